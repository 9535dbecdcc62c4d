package sqlgen

import (
	"fmt"
	"regexp"
	"strings"
)

// Null is the SQL literal for an absent value.
const Null = "NULL"

var validIdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Quote wraps s in single quotes, doubling every single quote inside it.
// No other character is altered: backslashes, percent signs and Unicode pass
// through verbatim (standard_conforming_strings semantics).
//
// Quote must be applied exactly once to a raw value.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Literal renders an optional value: NULL when absent, Quote(value) otherwise.
// Its signature matches pgseed.Record.Value so the two compose directly:
//
//	sqlgen.Literal(rec.Value(pgseed.FieldNationalID))
func Literal(value string, present bool) string {
	if !present {
		return Null
	}
	return Quote(value)
}

// ValidateIdentifier validates a PostgreSQL table name.
// Accepts: "table" or "schema.table"
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("table name is empty")
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return fmt.Errorf("invalid table %q: expected [schema.]table format", name)
	}

	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("invalid table %q: empty identifier", name)
		}
		if len(part) > 63 {
			return fmt.Errorf("invalid table %q: identifier %q exceeds 63 character limit", name, part)
		}
		if !validIdentifierPattern.MatchString(part) {
			return fmt.Errorf("invalid table %q: %q is not a valid identifier", name, part)
		}
	}

	return nil
}
