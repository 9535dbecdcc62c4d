package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgseed/internal/logging"
	"github.com/vvka-141/pgseed/internal/retry"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// TokenBasedConnector authenticates with a token from a TokenProvider
// (AWS IAM, Azure Entra ID). A fresh token is requested on every attempt.
type TokenBasedConnector struct {
	config        *pgseed.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        pgseed.Logger
	retryExecutor *retry.Executor

	// open is replaced in tests.
	open func(ctx context.Context, cfg *pgseed.ConnectionConfig, connStr string, logger pgseed.Logger) (*pgxpool.Pool, error)
}

// NewTokenBasedConnector creates a connector that uses tokenProvider for the
// password. providerName appears in errors and warnings.
func NewTokenBasedConnector(config *pgseed.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger pgseed.Logger) *TokenBasedConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
		open:          openPool,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	c.logger.Verbose("Authenticating with %s", c.tokenProvider)

	var pool *pgxpool.Pool
	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
		}
		if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
			c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
		}

		withToken := *c.config
		withToken.Password = token

		pool, err = c.open(ctx, c.config, BuildConnectionString(&withToken), c.logger)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pgseed.ErrConnectionFailed, err)
	}
	return pool, nil
}
