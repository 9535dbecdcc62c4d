// Package services wires the building blocks into the two pgseed workflows:
// GenerateService turns a source file into an upsert batch, and RunnerService
// executes SQL files against PostgreSQL.
package services
