package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgseed/internal/logging"
	"github.com/vvka-141/pgseed/internal/retry"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// Pool settings. exec runs one file at a time, so a small pool suffices.
const (
	DefaultMaxConns        = 2
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 10 * time.Minute
)

// configurePool applies pool limits and forwards server NOTICEs (RAISE NOTICE
// in schema files) to the logger.
func configurePool(poolConfig *pgxpool.Config, logger pgseed.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Info("%s: %s", notice.Severity, notice.Message)
	}
}

// openPool parses connStr, opens a pool and pings it. Failures are wrapped
// with wrapConnectionError so the retry classifier still sees the cause.
func openPool(ctx context.Context, cfg *pgseed.ConnectionConfig, connStr string, logger pgseed.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	configurePool(poolConfig, logger)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}
	return pool, nil
}

func newRetryExecutor(logger pgseed.Logger) *retry.Executor {
	return retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), retry.NewDefaultBackoff()).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Connection attempt %d failed, retrying in %v: %v", attempt+1, delay.Round(time.Millisecond), err)
		})
}

// StandardConnector connects with username/password and retries transient
// failures.
type StandardConnector struct {
	config        *pgseed.ConnectionConfig
	logger        pgseed.Logger
	retryExecutor *retry.Executor
}

func NewStandardConnector(config *pgseed.ConnectionConfig, logger pgseed.Logger) *StandardConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &StandardConnector{
		config:        config,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
	}
}

func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := BuildConnectionString(c.config)

	var pool *pgxpool.Pool
	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		var err error
		pool, err = openPool(ctx, c.config, connStr, c.logger)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pgseed.ErrConnectionFailed, err)
	}
	return pool, nil
}

// NewConnector picks the Connector for config.AuthMethod.
func NewConnector(config *pgseed.ConnectionConfig, logger pgseed.Logger) (pgseed.Connector, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	switch config.AuthMethod {
	case pgseed.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case pgseed.AuthMethodAWSIAM:
		endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)
		provider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pgseed.ErrInvalidConfig, err)
		}
		return NewTokenBasedConnector(config, provider, "AWS IAM", logger), nil
	case pgseed.AuthMethodGoogleIAM:
		if config.GoogleInstance == "" {
			return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", pgseed.ErrInvalidConfig)
		}
		if config.Username == "" {
			return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username (-U): %w", pgseed.ErrInvalidConfig)
		}
		return NewGoogleCloudSQLConnector(config, logger), nil
	case pgseed.AuthMethodAzureEntraID:
		provider, err := newAzureTokenProvider(config)
		if err != nil {
			return nil, err
		}
		return NewTokenBasedConnector(config, provider, "Azure", logger), nil
	default:
		return nil, fmt.Errorf("auth method %v: %w", config.AuthMethod, pgseed.ErrUnsupportedAuthMethod)
	}
}

// newAzureTokenProvider uses Service Principal credentials when all three are
// present and the DefaultAzureCredential chain otherwise.
func newAzureTokenProvider(config *pgseed.ConnectionConfig) (TokenProvider, error) {
	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		return NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	}
	return NewAzureDefaultCredentialProvider()
}

// wrapConnectionError adds troubleshooting hints to common pgx connection
// errors. The original error stays in the chain.
func wrapConnectionError(err error, host string, port int, database string) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	var hint string
	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused"):
		hint = fmt.Sprintf(`connection refused to %s

Check that PostgreSQL is running (pg_isready -h %s -p %d) and that the host and port are right.`, addr, host, port)

	case strings.Contains(msg, "no such host") || strings.Contains(msg, "no host"):
		hint = fmt.Sprintf(`cannot resolve host %q

Check the hostname spelling and DNS.`, host)

	case strings.Contains(msg, "password authentication failed"):
		hint = fmt.Sprintf(`password authentication failed for database %q

Check $PGPASSWORD or the password in the connection string.`, database)

	case strings.Contains(msg, "does not exist"):
		hint = fmt.Sprintf(`database %q does not exist

Create it first: createdb %s`, database, database)

	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		hint = fmt.Sprintf(`connection timed out to %s

The server may be overloaded or a firewall may be dropping packets.`, addr)

	case strings.Contains(msg, "ssl") || strings.Contains(msg, "tls"):
		hint = `SSL/TLS connection error

Check --sslmode against the server's SSL configuration.`

	case strings.Contains(msg, "too many connections"):
		hint = fmt.Sprintf(`too many connections to database %q

max_connections is exhausted on the server.`, database)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return fmt.Errorf("%s\n\nOriginal error: %w", hint, err)
}
