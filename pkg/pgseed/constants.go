package pgseed

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Generation/execution completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (invalid flags or arguments)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied execution approval
	ExitExecutionFailed = 13 // SQL execution failed
	ExitInputMissing    = 14 // Source file not found or unreadable
	ExitOutputFailed    = 15 // Output file could not be written
)

const (
	// DefaultInputPath is the source file scanned by `pgseed generate` when no
	// input is configured.
	DefaultInputPath = "src/data/beneficiaries.ts"

	// DefaultOutputPath is the SQL file written by `pgseed generate`.
	// It is overwritten on every run.
	DefaultOutputPath = "beneficiaries_insert.sql"

	// DefaultTable is the target table of the generated upserts.
	DefaultTable = "beneficiaries"

	// DefaultProgressInterval is how many statements are generated between
	// progress messages.
	DefaultProgressInterval = 20

	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultExecTimeout bounds a whole `pgseed exec` run.
	DefaultExecTimeout = 3 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxErrorPreviewLength is the maximum number of characters of a failed
	// SQL file shown in error messages.
	MaxErrorPreviewLength = 200
)

// DefaultExecFiles are executed by `pgseed exec` when neither arguments nor
// pgseed.yaml name any files.
var DefaultExecFiles = []string{
	"001_core_schema.sql",
	"002_functions.sql",
}
