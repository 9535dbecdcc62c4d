package sqlgen

import (
	"fmt"
	"io"
	"time"

	"github.com/vvka-141/pgseed/internal/identity"
	"github.com/vvka-141/pgseed/internal/logging"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// Generator renders extracted records as an idempotent upsert batch.
type Generator struct {
	table         string
	logger        pgseed.Logger
	now           func() time.Time
	progressEvery int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for progress messages.
func WithLogger(l pgseed.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithClock replaces time.Now for the header date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithProgressEvery sets how many statements pass between progress messages.
// Values <= 0 disable progress reporting.
func WithProgressEvery(n int) Option {
	return func(g *Generator) {
		g.progressEvery = n
	}
}

// NewGenerator creates a Generator targeting table.
// Returns an error if table is not a valid [schema.]name identifier.
func NewGenerator(table string, opts ...Option) (*Generator, error) {
	if err := ValidateIdentifier(table); err != nil {
		return nil, fmt.Errorf("%w: %v", pgseed.ErrInvalidConfig, err)
	}

	g := &Generator{
		table:         table,
		logger:        logging.NewNullLogger(),
		now:           time.Now,
		progressEvery: pgseed.DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate writes the header, one upsert per record in order, and the
// verification query to w. It returns the number of upserts written.
//
// The first write error aborts generation; whatever reached w must then be
// discarded by the caller.
func (g *Generator) Generate(records []pgseed.Record, w io.Writer) (int, error) {
	total := len(records)

	if err := writeHeader(w, total, g.now().Format("2006-01-02")); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		id := identity.DeriveString(rec.OriginalID)
		if err := writeUpsert(w, g.table, normalize(id, rec)); err != nil {
			return i, fmt.Errorf("failed to write statement for record %s: %w", rec.OriginalID, err)
		}

		if g.progressEvery > 0 && (i+1)%g.progressEvery == 0 {
			g.logger.Info("  Generated %d/%d", i+1, total)
		}
	}

	if err := writeVerification(w, g.table); err != nil {
		return total, fmt.Errorf("failed to write verification query: %w", err)
	}

	return total, nil
}
