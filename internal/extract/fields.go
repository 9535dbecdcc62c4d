package extract

import (
	"regexp"

	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// fieldPattern pairs a record field with the expression that finds its value
// inside a fragment.
type fieldPattern struct {
	field   pgseed.Field
	pattern *regexp.Regexp
}

// fieldTable is consumed generically by extractFields; adding a field to
// pgseed.Fields is enough to extract it.
var fieldTable = buildFieldTable(pgseed.Fields)

func buildFieldTable(fields []pgseed.Field) []fieldPattern {
	table := make([]fieldPattern, 0, len(fields))
	for _, f := range fields {
		table = append(table, fieldPattern{field: f, pattern: keyValuePattern(string(f))})
	}
	return table
}

// keyValuePattern matches `key: "value"` or `key: 'value'`. The value is
// non-empty and ends at the quote that opened it.
func keyValuePattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^A-Za-z0-9_$])` + regexp.QuoteMeta(key) + `\s*:\s*(?:"([^"]+)"|'([^']+)')`)
}

// extractFields searches body independently for every field in the table.
// Missing fields are simply absent from the result.
func extractFields(body string) map[pgseed.Field]string {
	values := make(map[pgseed.Field]string, len(fieldTable))
	for _, fp := range fieldTable {
		m := fp.pattern.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if m[1] != "" {
			values[fp.field] = m[1]
		} else {
			values[fp.field] = m[2]
		}
	}
	return values
}
