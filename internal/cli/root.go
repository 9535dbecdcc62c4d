package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgseed",
	Short: "Beneficiary seed generator and SQL runner for PostgreSQL",
	Long: `pgseed turns beneficiary records embedded in a TypeScript data file into an
idempotent batch of PostgreSQL upserts, and runs SQL files against a database.

  pgseed generate     writes beneficiaries_insert.sql from src/data/beneficiaries.ts
  pgseed exec         runs SQL files in order, one transaction per file

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - User denied execution approval
  13 - SQL execution failed
  14 - Input file not found
  15 - Output file could not be written`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints a returned error once.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	// -h is taken by --host, as in psql.
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgseed")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to pgseed.yaml (default: ./pgseed.yaml if present)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// commandContext returns cmd's context, or Background when the command is
// invoked directly (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
