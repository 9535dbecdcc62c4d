package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/pgseed/internal/db"
	"github.com/vvka-141/pgseed/internal/logging"
	"github.com/vvka-141/pgseed/internal/services"
	"github.com/vvka-141/pgseed/internal/ui"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

var execCmd = &cobra.Command{
	Use:   "exec [file.sql...]",
	Short: "Execute SQL files against PostgreSQL",
	Long: `Exec runs SQL files in the given order. Each file runs in its own
transaction. Missing files are reported and skipped; the first failing file is
rolled back and stops the run.

Without arguments the files come from exec.files in pgseed.yaml, or default to
001_core_schema.sql and 002_functions.sql.

Connection precedence:
  --connection > $DATABASE_URL > flags > PG* variables > pgseed.yaml > defaults
A .env file in the working directory is loaded first.

Password Authentication:
  There is no password flag. Use $PGPASSWORD or a connection string.

Examples:
  pgseed exec -d care
  pgseed exec 001_core_schema.sql beneficiaries_insert.sql -d care --verify-table beneficiaries
  pgseed exec --connection postgresql://app@db.example.com/care --force
  pgseed exec -h mydb.rds.amazonaws.com -U app -d care --auth aws --aws-region eu-west-1`,
	RunE: runExec,
}

type execFlagValues struct {
	connection, host, username, database, sslMode string
	port                                          int
	auth, awsRegion, googleInstance               string
	azureTenantID, azureClientID                  string
	force                                         bool
	verifyTable                                   string
	timeout                                       time.Duration
}

var execFlags execFlagValues

func init() {
	rootCmd.AddCommand(execCmd)

	f := execCmd.Flags()
	f.StringVar(&execFlags.connection, "connection", "",
		"PostgreSQL connection string (URI or ADO.NET format)\n"+
			"Mutually exclusive with --host, --port, --username, --sslmode")
	f.StringVarP(&execFlags.host, "host", "h", "", "PostgreSQL server host (default: $PGHOST or localhost)")
	f.IntVarP(&execFlags.port, "port", "p", 0, "PostgreSQL server port (default: $PGPORT or 5432)")
	f.StringVarP(&execFlags.username, "username", "U", "", "PostgreSQL user (default: $PGUSER or current OS user)")
	f.StringVarP(&execFlags.database, "database", "d", "", "Target database (overrides the connection string)")
	f.StringVar(&execFlags.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full (default: prefer, or $PGSSLMODE)")

	f.StringVar(&execFlags.auth, "auth", "", "Authentication: standard|aws|google|azure")
	f.StringVar(&execFlags.awsRegion, "aws-region", "", "AWS region for RDS IAM auth (default: $AWS_REGION)")
	f.StringVar(&execFlags.googleInstance, "google-instance", "", "Cloud SQL instance (project:region:instance)")
	f.StringVar(&execFlags.azureTenantID, "azure-tenant-id", "", "Azure AD tenant ID (overrides $AZURE_TENANT_ID)")
	f.StringVar(&execFlags.azureClientID, "azure-client-id", "", "Azure AD client ID (overrides $AZURE_CLIENT_ID)")

	f.BoolVar(&execFlags.force, "force", false, "Skip the confirmation prompt (5 second countdown instead)")
	f.StringVar(&execFlags.verifyTable, "verify-table", "", "Report SELECT COUNT(*) of this table after all files ran")
	f.DurationVar(&execFlags.timeout, "timeout", pgseed.DefaultExecTimeout,
		"Upper bound for the whole run, including approval\n"+
			"For statement-level limits use SET statement_timeout in SQL")
}

func buildExecConfig(cmd *cobra.Command, args []string, verbose bool, logger pgseed.Logger) (pgseed.ExecConfig, error) {
	_ = godotenv.Load()

	project, err := loadProjectConfig(cmd)
	if err != nil {
		return pgseed.ExecConfig{}, err
	}

	flags := &db.ConnFlags{
		Host:           execFlags.host,
		Port:           execFlags.port,
		Username:       execFlags.username,
		Database:       execFlags.database,
		SSLMode:        execFlags.sslMode,
		AuthMethod:     execFlags.auth,
		AWSRegion:      execFlags.awsRegion,
		GoogleInstance: execFlags.googleInstance,
		AzureTenantID:  execFlags.azureTenantID,
		AzureClientID:  execFlags.azureClientID,
	}
	connConfig, err := db.ResolveConnectionParams(execFlags.connection, flags, db.LoadFromEnvironment(), project)
	if err != nil {
		return pgseed.ExecConfig{}, err
	}

	logger.Verbose("Connection resolved:")
	logger.Verbose("  Host: %s", connConfig.Host)
	logger.Verbose("  Port: %d", connConfig.Port)
	logger.Verbose("  User: %s", connConfig.Username)
	logger.Verbose("  Database: %s", connConfig.Database)
	logger.Verbose("  SSL Mode: %s", connConfig.SSLMode)
	logger.Verbose("  Auth Method: %s", connConfig.AuthMethod)

	files := args
	if len(files) == 0 {
		files = project.Exec.Files
	}
	if len(files) == 0 {
		files = pgseed.DefaultExecFiles
	}

	timeout := execFlags.timeout
	if !cmd.Flags().Changed("timeout") {
		fromYAML, err := project.Exec.TimeoutDuration()
		if err != nil {
			return pgseed.ExecConfig{}, fmt.Errorf("%w: %w", err, pgseed.ErrInvalidConfig)
		}
		if fromYAML > 0 {
			timeout = fromYAML
		}
	}

	verifyTable := execFlags.verifyTable
	if verifyTable == "" {
		verifyTable = project.Exec.VerifyTable
	}

	return pgseed.ExecConfig{
		Files:             files,
		DatabaseName:      connConfig.Database,
		ConnectionString:  db.BuildConnectionString(connConfig),
		VerifyTable:       verifyTable,
		Force:             execFlags.force,
		Timeout:           timeout,
		Verbose:           verbose,
		AuthMethod:        connConfig.AuthMethod,
		AWSRegion:         connConfig.AWSRegion,
		GoogleInstance:    connConfig.GoogleInstance,
		AzureTenantID:     connConfig.AzureTenantID,
		AzureClientID:     connConfig.AzureClientID,
		AzureClientSecret: connConfig.AzureClientSecret,
	}, nil
}

// selectApprover returns the countdown approver for --force and the typed
// confirmation otherwise. Without a terminal there is nobody to type, so
// --force is required.
func selectApprover(force bool, mode ui.Mode) (pgseed.Approver, error) {
	if force {
		return ui.NewForcedApprover(), nil
	}
	if mode != ui.ModeInteractive {
		return nil, fmt.Errorf("no terminal for confirmation; re-run with --force: %w", pgseed.ErrApprovalDenied)
	}
	return ui.NewInteractiveApprover(), nil
}

func runExec(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)

	cfg, err := buildExecConfig(cmd, args, verbose, logger)
	if err != nil {
		return err
	}

	approver, err := selectApprover(cfg.Force, ui.DetectMode())
	if err != nil {
		return err
	}

	runner := services.NewRunnerService(
		func(c *pgseed.ConnectionConfig) (pgseed.Connector, error) {
			return db.NewConnector(c, logger)
		},
		approver,
		logger,
	)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := runner.Run(ctx, cfg); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}
