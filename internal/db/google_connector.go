package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgseed/internal/logging"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// GoogleCloudSQLConnector connects through the Cloud SQL Go Connector with
// IAM database authentication. The dialer handles TLS and tokens.
//
// Callers must Close the connector after closing the pool.
type GoogleCloudSQLConnector struct {
	config *pgseed.ConnectionConfig
	logger pgseed.Logger
	dialer *cloudsqlconn.Dialer
}

func NewGoogleCloudSQLConnector(config *pgseed.ConnectionConfig, logger pgseed.Logger) *GoogleCloudSQLConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &GoogleCloudSQLConnector{config: config, logger: logger}
}

func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	instance := c.config.GoogleInstance

	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w: %w", err, pgseed.ErrConnectionFailed)
	}

	// sslmode=disable because the dialer already encrypts the connection.
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable", instance, c.config.Username, c.config.Database)
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, instance)
	}
	configurePool(poolConfig, c.logger)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w: %w", instance, err, pgseed.ErrConnectionFailed)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		dialer.Close()
		return nil, fmt.Errorf("failed to ping %s: %w: %w", instance, err, pgseed.ErrConnectionFailed)
	}

	c.dialer = dialer
	return pool, nil
}

// Close releases the Cloud SQL dialer.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer == nil {
		return nil
	}
	err := c.dialer.Close()
	c.dialer = nil
	return err
}
