// Package pgseed holds the public types shared by the pgseed commands:
// extracted records, run configurations, exit codes, sentinel errors and the
// interfaces (Logger, Connector, Approver, DBConnection) the internal packages
// implement.
package pgseed
