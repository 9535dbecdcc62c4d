// Package testinfra starts disposable PostgreSQL servers for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultImage can be replaced with PGSEED_TEST_IMAGE, e.g. to test
	// against an older server.
	DefaultImage = "postgres:17-alpine"

	adminUser     = "postgres"
	adminPassword = "postgres"
	adminDB       = "postgres"
)

// PostgresContainer is a running server plus a superuser connection string.
type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

func image() string {
	if img := os.Getenv("PGSEED_TEST_IMAGE"); img != "" {
		return img
	}
	return DefaultImage
}

// StartPostgres starts a server without TLS. initScripts run once, in order,
// against the admin database during initdb. Callers own Terminate.
func StartPostgres(ctx context.Context, initScripts ...string) (*PostgresContainer, error) {
	opts := []testcontainers.ContainerCustomizer{
		postgres.WithUsername(adminUser),
		postgres.WithPassword(adminPassword),
		postgres.WithDatabase(adminDB),
		testcontainers.WithWaitStrategy(
			// initdb restarts the server once before it is usable.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		),
	}
	if len(initScripts) > 0 {
		opts = append(opts, postgres.WithInitScripts(initScripts...))
	}

	ctr, err := postgres.Run(ctx, image(), opts...)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", image(), err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable", "application_name=pgseed-test")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}
