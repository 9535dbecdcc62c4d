package pgseed

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GenerateConfig contains the parameters of one `pgseed generate` run.
type GenerateConfig struct {
	// InputPath is the source text file scanned for object literals.
	InputPath string

	// OutputPath is the SQL file written (overwritten) by the run.
	OutputPath string

	// Table is the target table of the generated upserts.
	Table string

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks that the GenerateConfig has all required fields.
func (c *GenerateConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.InputPath) == "" {
		errs = append(errs, fmt.Errorf("InputPath is required: %w", ErrInvalidConfig))
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}
	if c.InputPath != "" && c.InputPath == c.OutputPath {
		errs = append(errs, fmt.Errorf("output %q would overwrite the input: %w", c.OutputPath, ErrInvalidConfig))
	}
	if strings.TrimSpace(c.Table) == "" {
		errs = append(errs, fmt.Errorf("Table is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// GenerateSummary reports the outcome of a generate run.
type GenerateSummary struct {
	// Fragments is the number of candidate object literals found.
	Fragments int

	// Dropped is the number of fragments skipped for lacking a full name.
	Dropped int

	// Statements is the number of upsert statements written
	// (the trailing verification query is not counted).
	Statements int

	// OutputPath is the file that was written.
	OutputPath string

	// Checksum is the normalized SHA-256 of the output. It ignores comment
	// lines, so reruns over identical input produce the same value.
	Checksum string
}

// ExecConfig contains all parameters needed to execute SQL files.
type ExecConfig struct {
	// Files are executed in order, each inside its own transaction.
	Files []string

	// DatabaseName is the target database name, shown in the approval prompt.
	DatabaseName string

	// ConnectionString is the PostgreSQL connection string (URI or ADO.NET format).
	ConnectionString string

	// VerifyTable, when set, is counted after all files ran.
	VerifyTable string

	// Force skips the interactive approval prompt.
	Force bool

	// Timeout is the global timeout for the entire run.
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Cloud authentication settings, applied on top of ConnectionString.
	AWSRegion         string
	GoogleInstance    string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks if the ExecConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ExecConfig) Validate() error {
	var errs []error

	if len(c.Files) == 0 {
		errs = append(errs, fmt.Errorf("at least one SQL file is required: %w", ErrInvalidConfig))
	}
	if c.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}
	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ExecSummary reports the outcome of an exec run.
type ExecSummary struct {
	// Executed lists the files that were committed, in order.
	Executed []string

	// Skipped lists files that did not exist.
	Skipped []string

	// VerifiedRows is the row count of VerifyTable, or -1 when not verified.
	VerifiedRows int64
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance (project:region:instance)
	// required for AuthMethodGoogleIAM.
	GoogleInstance string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// Otherwise the DefaultAzureCredential chain is used.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod converts the names accepted in flags and pgseed.yaml.
// An empty name means standard authentication.
func ParseAuthMethod(name string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam", "awsiam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam", "gcp":
		return AuthMethodGoogleIAM, nil
	case "azure", "azure-entra", "entra":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", name, ErrUnsupportedAuthMethod)
	}
}
