package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/pgseed/internal/checksum"
	"github.com/vvka-141/pgseed/internal/db"
	"github.com/vvka-141/pgseed/internal/sqlgen"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

type connectFunc func(ctx context.Context, connConfig *pgseed.ConnectionConfig) (pgseed.DBConnection, func(), error)

// RunnerService implements `pgseed exec`: SQL files run in order, each in its
// own transaction, and the first failure stops the run.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type RunnerService struct {
	connectorFactory func(*pgseed.ConnectionConfig) (pgseed.Connector, error)
	approver         pgseed.Approver
	logger           pgseed.Logger
	checksum         checksum.Calculator

	connect  connectFunc
	readFile func(string) ([]byte, error)
	stat     func(string) (os.FileInfo, error)
}

// NewRunnerService panics on nil dependencies; those are wiring mistakes,
// not runtime conditions.
func NewRunnerService(
	connectorFactory func(*pgseed.ConnectionConfig) (pgseed.Connector, error),
	approver pgseed.Approver,
	logger pgseed.Logger,
) *RunnerService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &RunnerService{
		connectorFactory: connectorFactory,
		approver:         approver,
		logger:           logger,
		checksum:         checksum.New(),
		readFile:         os.ReadFile,
		stat:             os.Stat,
	}
	svc.connect = svc.defaultConnect
	return svc
}

func (s *RunnerService) defaultConnect(ctx context.Context, connConfig *pgseed.ConnectionConfig) (pgseed.DBConnection, func(), error) {
	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		if closer, ok := connector.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return db.NewPoolAdapter(pool), cleanup, nil
}

// Run executes cfg.Files against cfg.DatabaseName.
func (s *RunnerService) Run(ctx context.Context, cfg pgseed.ExecConfig) (pgseed.ExecSummary, error) {
	summary := pgseed.ExecSummary{VerifiedRows: -1}

	connConfig, err := s.validateAndParseConfig(cfg)
	if err != nil {
		return summary, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	present, missing := s.partitionFiles(cfg.Files)
	summary.Skipped = missing
	if len(present) == 0 {
		return summary, fmt.Errorf("%w: none of the SQL files exist: %s", pgseed.ErrInputNotFound, strings.Join(cfg.Files, ", "))
	}

	approved, err := s.approver.RequestApproval(ctx, cfg.DatabaseName)
	if err != nil {
		return summary, fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return summary, pgseed.ErrApprovalDenied
	}

	s.logger.Info("Connecting to database '%s' on %s:%d...", connConfig.Database, connConfig.Host, connConfig.Port)
	conn, cleanup, err := s.connect(ctx, connConfig)
	if err != nil {
		return summary, err
	}
	defer cleanup()
	s.logger.Info("✓ Connected to database.")

	for _, file := range cfg.Files {
		if !slices.Contains(present, file) {
			continue
		}
		if err := s.executeFile(ctx, conn, file); err != nil {
			s.logger.Error("Stopping execution due to error.")
			return summary, err
		}
		summary.Executed = append(summary.Executed, file)
	}

	if cfg.VerifyTable != "" {
		rows, err := s.countRows(ctx, conn, cfg.VerifyTable)
		if err != nil {
			return summary, err
		}
		summary.VerifiedRows = rows
		s.logger.Info("✓ %s contains %d rows", cfg.VerifyTable, rows)
	}

	s.logger.Info("Done. %d file(s) executed, %d skipped.", len(summary.Executed), len(summary.Skipped))
	return summary, nil
}

func (s *RunnerService) validateAndParseConfig(cfg pgseed.ExecConfig) (*pgseed.ConnectionConfig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.VerifyTable != "" {
		if err := sqlgen.ValidateIdentifier(cfg.VerifyTable); err != nil {
			return nil, fmt.Errorf("verify table: %w: %w", err, pgseed.ErrInvalidConfig)
		}
	}

	connConfig, err := db.ParseConnectionString(cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w: %w", err, pgseed.ErrInvalidConfig)
	}
	if connConfig.AppName == "" {
		connConfig.AppName = "pgseed"
	}
	connConfig.Database = cfg.DatabaseName
	connConfig.AuthMethod = cfg.AuthMethod
	connConfig.AWSRegion = cfg.AWSRegion
	connConfig.GoogleInstance = cfg.GoogleInstance
	connConfig.AzureTenantID = cfg.AzureTenantID
	connConfig.AzureClientID = cfg.AzureClientID
	connConfig.AzureClientSecret = cfg.AzureClientSecret

	s.logger.Verbose("Target database: %s (auth: %s)", cfg.DatabaseName, cfg.AuthMethod)
	return connConfig, nil
}

// partitionFiles splits files into those that exist and those that do not,
// warning about each missing one.
func (s *RunnerService) partitionFiles(files []string) (present, missing []string) {
	for _, file := range files {
		info, err := s.stat(file)
		if err != nil || info.IsDir() {
			s.logger.Info("⚠ File not found: %s", file)
			missing = append(missing, file)
			continue
		}
		present = append(present, file)
	}
	return present, missing
}

func (s *RunnerService) executeFile(ctx context.Context, conn pgseed.DBConnection, file string) error {
	content, err := s.readFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", pgseed.ErrInputNotFound, file)
		}
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	s.logger.Info("Executing %s...", file)
	s.logger.Verbose("%s: %d bytes, checksum %s", file, len(content), s.checksum.CalculateNormalized(content))

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: begin transaction: %w", pgseed.ErrExecutionFailed, file, err)
	}

	// Without arguments pgx uses the simple protocol, so a file may hold
	// any number of statements.
	if _, err := tx.Exec(ctx, string(content)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Verbose("Rollback of %s failed: %v", file, rbErr)
		}
		s.logger.Error("✗ Error executing %s: %v", file, err)
		return fmt.Errorf("%w: %s: %w%s", pgseed.ErrExecutionFailed, file, err, errorContext(err, string(content)))
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("%w: %s: commit: %w", pgseed.ErrExecutionFailed, file, err)
	}

	s.logger.Info("✓ Successfully executed %s", file)
	return nil
}

func (s *RunnerService) countRows(ctx context.Context, conn pgseed.DBConnection, table string) (int64, error) {
	ident := pgx.Identifier(strings.Split(table, ".")).Sanitize()

	var rows int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+ident).Scan(&rows); err != nil {
		return -1, fmt.Errorf("%w: verify %s: %w", pgseed.ErrExecutionFailed, table, err)
	}
	return rows, nil
}

// errorContext points at the failing line when PostgreSQL reports a
// character position into the submitted SQL.
func errorContext(err error, sql string) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Position <= 0 {
		return ""
	}

	runes := []rune(sql)
	pos := int(pgErr.Position) - 1 // 1-based, in characters
	if pos >= len(runes) {
		return ""
	}

	before := string(runes[:pos])
	line := strings.Count(before, "\n") + 1
	text := before[strings.LastIndex(before, "\n")+1:] + string(runes[pos:])
	if end := strings.IndexByte(text, '\n'); end >= 0 {
		text = text[:end]
	}
	text = strings.TrimSpace(text)
	if r := []rune(text); len(r) > pgseed.MaxErrorPreviewLength {
		text = string(r[:pgseed.MaxErrorPreviewLength]) + "..."
	}

	return fmt.Sprintf("\n  → line %d: %s", line, text)
}
