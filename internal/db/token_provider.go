package db

import (
	"context"
	"time"
)

// TokenProvider acquires short-lived credentials that are sent as the
// PostgreSQL password.
type TokenProvider interface {
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. It must not include secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// tokenExpiryWarning is the remaining lifetime below which a warning is logged.
const tokenExpiryWarning = 5 * time.Minute
