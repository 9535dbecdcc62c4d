// Package db resolves connection parameters and opens pgx pools for
// `pgseed exec`, including cloud IAM authentication for AWS RDS, Azure
// Database for PostgreSQL and Google Cloud SQL.
package db
