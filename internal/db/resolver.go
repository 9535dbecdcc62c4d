package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/pgseed/internal/config"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// ConnFlags holds connection parameters given on the command line.
// They follow the psql flag conventions (-h, -p, -U, -d).
//
// There is no password flag. Use $PGPASSWORD or a connection string.
type ConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string

	AuthMethod     string
	AWSRegion      string
	GoogleInstance string
	AzureTenantID  string
	AzureClientID  string
}

// hasServerParams reports whether any flag other than Database was set.
// Database may be combined with a connection string to override its target.
func (f *ConnFlags) hasServerParams() bool {
	return f.Host != "" || f.Port != 0 || f.Username != "" || f.SSLMode != ""
}

// EnvVars represents PostgreSQL standard environment variables.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string
	PGDATABASE   string
	PGSSLMODE    string
	DATABASE_URL string

	AWS_REGION string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment reads the variables EnvVars describes.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:              os.Getenv("PGHOST"),
		PGPORT:              os.Getenv("PGPORT"),
		PGUSER:              os.Getenv("PGUSER"),
		PGPASSWORD:          os.Getenv("PGPASSWORD"),
		PGDATABASE:          os.Getenv("PGDATABASE"),
		PGSSLMODE:           os.Getenv("PGSSLMODE"),
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ResolveConnectionParams builds the connection for `pgseed exec`:
//
//  1. --connection
//  2. $DATABASE_URL, unless server flags (-h, -p, -U, --sslmode) are set
//  3. flags, then PG* environment variables, then pgseed.yaml, then defaults
//
// -d overrides the database of a connection string. Authentication settings
// follow flag > pgseed.yaml, and Azure credentials in the environment select
// Entra ID when no method was named.
func ResolveConnectionParams(
	connString string,
	flags *ConnFlags,
	env *EnvVars,
	project *config.ProjectConfig,
) (*pgseed.ConnectionConfig, error) {
	if flags == nil {
		flags = &ConnFlags{}
	}
	if env == nil {
		env = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if project != nil {
		pc = project.Connection
	}

	if connString != "" && flags.hasServerParams() {
		return nil, fmt.Errorf("cannot combine --connection with -h, -p, -U or --sslmode: %w", pgseed.ErrInvalidConfig)
	}

	var cfg *pgseed.ConnectionConfig
	var err error
	switch {
	case connString != "":
		cfg, err = resolveFromConnectionString(connString, env)
	case !flags.hasServerParams() && env.DATABASE_URL != "":
		cfg, err = resolveFromConnectionString(env.DATABASE_URL, env)
	default:
		cfg, err = resolveFromParams(flags, env, pc)
	}
	if err != nil {
		return nil, err
	}

	if flags.Database != "" {
		cfg.Database = flags.Database
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("no database given (use -d, $PGDATABASE or connection.database in pgseed.yaml): %w", pgseed.ErrInvalidConfig)
	}

	if err := applyAuth(cfg, flags, env, pc); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveFromConnectionString(connStr string, env *EnvVars) (*pgseed.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w: %w", err, pgseed.ErrInvalidConfig)
	}

	// libpq treats the environment as a fallback for missing parameters.
	if cfg.Password == "" {
		cfg.Password = env.PGPASSWORD
	}
	cfg.SSLMode = firstNonEmpty(cfg.SSLMode, env.PGSSLMODE, defaultSSLMode)
	return cfg, nil
}

func resolveFromParams(flags *ConnFlags, env *EnvVars, pc config.ConnectionConfig) (*pgseed.ConnectionConfig, error) {
	cfg := newConnectionConfig()

	cfg.Host = firstNonEmpty(flags.Host, env.PGHOST, pc.Host, defaultHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case env.PGPORT != "":
		port, err := strconv.Atoi(env.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value %q: %w", env.PGPORT, pgseed.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	}

	cfg.Username = firstNonEmpty(flags.Username, env.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = env.PGPASSWORD
	cfg.Database = firstNonEmpty(env.PGDATABASE, pc.Database)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, env.PGSSLMODE, pc.SSLMode, defaultSSLMode)

	return cfg, nil
}

func applyAuth(cfg *pgseed.ConnectionConfig, flags *ConnFlags, env *EnvVars, pc config.ConnectionConfig) error {
	name := firstNonEmpty(flags.AuthMethod, pc.AuthMethod)
	method, err := pgseed.ParseAuthMethod(name)
	if err != nil {
		return err
	}

	tenantID := firstNonEmpty(flags.AzureTenantID, pc.AzureTenantID, env.AZURE_TENANT_ID)
	clientID := firstNonEmpty(flags.AzureClientID, pc.AzureClientID, env.AZURE_CLIENT_ID)
	if name == "" && (tenantID != "" || clientID != "") {
		method = pgseed.AuthMethodAzureEntraID
	}

	cfg.AuthMethod = method
	switch method {
	case pgseed.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, pc.AWSRegion, env.AWS_REGION)
	case pgseed.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	case pgseed.AuthMethodAzureEntraID:
		cfg.AzureTenantID = tenantID
		cfg.AzureClientID = clientID
		// The secret only ever comes from the environment.
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
