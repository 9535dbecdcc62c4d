package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgseed/internal/config"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

func TestResolve_ConnectionStringWins(t *testing.T) {
	env := &EnvVars{
		DATABASE_URL: "postgresql://env@envhost/envdb",
		PGHOST:       "pghost",
		PGPASSWORD:   "fromenv",
		PGSSLMODE:    "require",
	}

	cfg, err := ResolveConnectionParams("postgresql://app@flaghost:5433/care", nil, env, nil)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "care", cfg.Database)
	assert.Equal(t, "fromenv", cfg.Password, "PGPASSWORD fills a missing password")
	assert.Equal(t, "require", cfg.SSLMode, "PGSSLMODE fills a missing sslmode")
	assert.Equal(t, pgseed.AuthMethodStandard, cfg.AuthMethod)
}

func TestResolve_DatabaseURL(t *testing.T) {
	env := &EnvVars{DATABASE_URL: "postgresql://app:pw@urlhost/urldb?sslmode=disable"}

	cfg, err := ResolveConnectionParams("", nil, env, nil)
	require.NoError(t, err)

	assert.Equal(t, "urlhost", cfg.Host)
	assert.Equal(t, "urldb", cfg.Database)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestResolve_ServerFlagsBypassDatabaseURL(t *testing.T) {
	env := &EnvVars{DATABASE_URL: "postgresql://app@urlhost/urldb", PGDATABASE: "envdb"}

	cfg, err := ResolveConnectionParams("", &ConnFlags{Host: "flaghost"}, env, nil)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, "envdb", cfg.Database)
}

func TestResolve_DatabaseFlagOverridesConnectionString(t *testing.T) {
	cfg, err := ResolveConnectionParams("postgresql://app@host/maintenance", &ConnFlags{Database: "care"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "care", cfg.Database)
}

func TestResolve_Precedence(t *testing.T) {
	project := &config.ProjectConfig{Connection: config.ConnectionConfig{
		Host: "yamlhost", Port: 7000, Username: "yamluser", Database: "yamldb", SSLMode: "verify-full",
	}}

	t.Run("yaml when nothing else", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", nil, &EnvVars{}, project)
		require.NoError(t, err)
		assert.Equal(t, "yamlhost", cfg.Host)
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, "yamluser", cfg.Username)
		assert.Equal(t, "yamldb", cfg.Database)
		assert.Equal(t, "verify-full", cfg.SSLMode)
	})

	t.Run("env over yaml", func(t *testing.T) {
		env := &EnvVars{PGHOST: "envhost", PGPORT: "6000", PGUSER: "envuser", PGDATABASE: "envdb"}
		cfg, err := ResolveConnectionParams("", nil, env, project)
		require.NoError(t, err)
		assert.Equal(t, "envhost", cfg.Host)
		assert.Equal(t, 6000, cfg.Port)
		assert.Equal(t, "envuser", cfg.Username)
		assert.Equal(t, "envdb", cfg.Database)
	})

	t.Run("flags over env", func(t *testing.T) {
		env := &EnvVars{PGHOST: "envhost", PGPORT: "6000"}
		flags := &ConnFlags{Host: "flaghost", Port: 5000, Username: "flaguser", Database: "flagdb", SSLMode: "disable"}
		cfg, err := ResolveConnectionParams("", flags, env, project)
		require.NoError(t, err)
		assert.Equal(t, "flaghost", cfg.Host)
		assert.Equal(t, 5000, cfg.Port)
		assert.Equal(t, "flaguser", cfg.Username)
		assert.Equal(t, "flagdb", cfg.Database)
		assert.Equal(t, "disable", cfg.SSLMode)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", &ConnFlags{Database: "care"}, &EnvVars{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 5432, cfg.Port)
		assert.Equal(t, "prefer", cfg.SSLMode)
	})
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		conn    string
		flags   *ConnFlags
		env     *EnvVars
		wantErr error
	}{
		{"connection with server flags", "postgresql://h/db", &ConnFlags{Host: "x"}, nil, pgseed.ErrInvalidConfig},
		{"bad PGPORT", "", &ConnFlags{Database: "db"}, &EnvVars{PGPORT: "x"}, pgseed.ErrInvalidConfig},
		{"no database", "", nil, &EnvVars{}, pgseed.ErrInvalidConfig},
		{"bad connection string", "nonsense", nil, nil, pgseed.ErrInvalidConfig},
		{"bad auth method", "", &ConnFlags{Database: "db", AuthMethod: "kerberos"}, nil, pgseed.ErrUnsupportedAuthMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveConnectionParams(tt.conn, tt.flags, tt.env, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestResolve_AuthMethods(t *testing.T) {
	t.Run("aws region from env", func(t *testing.T) {
		cfg, err := ResolveConnectionParams("", &ConnFlags{Database: "db", AuthMethod: "aws"}, &EnvVars{AWS_REGION: "eu-west-1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, pgseed.AuthMethodAWSIAM, cfg.AuthMethod)
		assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	})

	t.Run("google instance from yaml", func(t *testing.T) {
		project := &config.ProjectConfig{Connection: config.ConnectionConfig{
			Database: "db", AuthMethod: "google", GoogleInstance: "proj:region:inst",
		}}
		cfg, err := ResolveConnectionParams("", nil, &EnvVars{}, project)
		require.NoError(t, err)
		assert.Equal(t, pgseed.AuthMethodGoogleIAM, cfg.AuthMethod)
		assert.Equal(t, "proj:region:inst", cfg.GoogleInstance)
	})

	t.Run("azure env implies entra id", func(t *testing.T) {
		env := &EnvVars{AZURE_TENANT_ID: "tenant", AZURE_CLIENT_ID: "client", AZURE_CLIENT_SECRET: "secret"}
		cfg, err := ResolveConnectionParams("", &ConnFlags{Database: "db"}, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgseed.AuthMethodAzureEntraID, cfg.AuthMethod)
		assert.Equal(t, "tenant", cfg.AzureTenantID)
		assert.Equal(t, "client", cfg.AzureClientID)
		assert.Equal(t, "secret", cfg.AzureClientSecret)
	})

	t.Run("explicit standard ignores azure env", func(t *testing.T) {
		env := &EnvVars{AZURE_TENANT_ID: "tenant"}
		cfg, err := ResolveConnectionParams("", &ConnFlags{Database: "db", AuthMethod: "standard"}, env, nil)
		require.NoError(t, err)
		assert.Equal(t, pgseed.AuthMethodStandard, cfg.AuthMethod)
		assert.Empty(t, cfg.AzureTenantID)
	})
}
