package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vvka-141/pgseed/internal/checksum"
	"github.com/vvka-141/pgseed/internal/extract"
	"github.com/vvka-141/pgseed/internal/output"
	"github.com/vvka-141/pgseed/internal/sqlgen"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// GenerateService implements `pgseed generate`.
type GenerateService struct {
	logger   pgseed.Logger
	now      func() time.Time
	checksum checksum.Calculator
}

func NewGenerateService(logger pgseed.Logger) *GenerateService {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &GenerateService{
		logger:   logger,
		now:      time.Now,
		checksum: checksum.New(),
	}
}

// Generate reads cfg.InputPath, extracts the records and writes the upsert
// batch to cfg.OutputPath. The output file is replaced atomically: on error
// the previous file, if any, is left as it was.
func (s *GenerateService) Generate(ctx context.Context, cfg pgseed.GenerateConfig) (pgseed.GenerateSummary, error) {
	if err := cfg.Validate(); err != nil {
		return pgseed.GenerateSummary{}, err
	}

	gen, err := sqlgen.NewGenerator(cfg.Table,
		sqlgen.WithLogger(s.logger),
		sqlgen.WithClock(s.now),
	)
	if err != nil {
		return pgseed.GenerateSummary{}, err
	}

	source, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pgseed.GenerateSummary{}, fmt.Errorf("%w: %s", pgseed.ErrInputNotFound, cfg.InputPath)
		}
		return pgseed.GenerateSummary{}, fmt.Errorf("%w: %w", pgseed.ErrInputNotFound, err)
	}
	s.logger.Verbose("Read %d bytes from %s", len(source), cfg.InputPath)

	records, stats := extract.ExtractWithStats(string(source))
	s.logger.Info("Found %d beneficiaries to insert", len(records))
	if stats.Dropped > 0 {
		s.logger.Verbose("Skipped %d of %d fragments without fullName", stats.Dropped, stats.Fragments)
	}

	var written bytes.Buffer
	var count int
	err = output.WriteFileAtomic(ctx, cfg.OutputPath, func(w io.Writer) error {
		var genErr error
		count, genErr = gen.Generate(records, io.MultiWriter(w, &written))
		return genErr
	})
	if err != nil {
		return pgseed.GenerateSummary{}, fmt.Errorf("%w: %s: %w", pgseed.ErrOutputFailed, cfg.OutputPath, err)
	}

	summary := pgseed.GenerateSummary{
		Fragments:  stats.Fragments,
		Dropped:    stats.Dropped,
		Statements: count,
		OutputPath: cfg.OutputPath,
		Checksum:   s.checksum.CalculateNormalized(written.Bytes()),
	}

	display := summary.OutputPath
	if abs, err := filepath.Abs(display); err == nil {
		display = abs
	}
	s.logger.Info("")
	s.logger.Info("✓ SQL file created: %s", display)
	s.logger.Info("  Total INSERT statements: %d", summary.Statements)
	s.logger.Verbose("Checksum (normalized SHA-256): %s", summary.Checksum)

	return summary, nil
}
