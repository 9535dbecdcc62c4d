package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgseed/internal/logging"
	"github.com/vvka-141/pgseed/internal/services"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the beneficiary upsert batch",
	Long: `Generate scans the input file for object literals carrying an id marker
(id: "<digits>"), extracts the beneficiary fields and writes one
INSERT ... ON CONFLICT (id) DO UPDATE statement per record, followed by a
row-count query.

Identifiers are UUID v5 values derived from "beneficiary-<id>", so running the
batch again updates the same rows instead of duplicating them.

The output file is replaced atomically on every run.

Defaults can be set in pgseed.yaml:

  generate:
    input: src/data/beneficiaries.ts
    output: beneficiaries_insert.sql
    table: beneficiaries

Examples:
  pgseed generate
  pgseed generate --input data/people.ts --output seed/people.sql
  pgseed generate --table care.beneficiaries -v`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("input", "i", pgseed.DefaultInputPath, "Source file to scan")
	generateCmd.Flags().StringP("output", "o", pgseed.DefaultOutputPath, "SQL file to write (overwritten)")
	generateCmd.Flags().String("table", pgseed.DefaultTable, "Target table, optionally schema-qualified")
}

func buildGenerateConfig(cmd *cobra.Command) (pgseed.GenerateConfig, error) {
	project, err := loadProjectConfig(cmd)
	if err != nil {
		return pgseed.GenerateConfig{}, err
	}

	return pgseed.GenerateConfig{
		InputPath:  firstSet(cmd, "input", project.Generate.Input),
		OutputPath: firstSet(cmd, "output", project.Generate.Output),
		Table:      firstSet(cmd, "table", project.Generate.Table),
		Verbose:    getVerboseFlag(cmd),
	}, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := buildGenerateConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), cfg.Verbose)
	_, err = services.NewGenerateService(logger).Generate(ctx, cfg)
	return err
}
