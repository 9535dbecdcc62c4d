package extract

import (
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// Stats describes one extraction pass.
type Stats struct {
	// Fragments is the number of spans carrying an id marker.
	Fragments int

	// Dropped is the number of fragments without a full name.
	Dropped int
}

// Extract returns the records found in source, in source order.
// Fragments without a fullName are dropped.
func Extract(source string) []pgseed.Record {
	records, _ := ExtractWithStats(source)
	return records
}

// ExtractWithStats is Extract plus counts for reporting.
func ExtractWithStats(source string) ([]pgseed.Record, Stats) {
	fragments := Fragments(source)

	stats := Stats{Fragments: len(fragments)}
	records := make([]pgseed.Record, 0, len(fragments))

	for _, frag := range fragments {
		values := extractFields(frag.Body)
		if _, ok := values[pgseed.FieldFullName]; !ok {
			stats.Dropped++
			continue
		}
		records = append(records, pgseed.NewRecord(frag.OriginalID, values))
	}

	return records, stats
}
