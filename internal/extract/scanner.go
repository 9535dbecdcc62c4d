package extract

import (
	"regexp"
	"strings"
)

const (
	openDelim  = '{'
	closeDelim = '}'
)

// idMarker matches `id: "<digits>"` (or single-quoted) at an identifier boundary.
var idMarker = regexp.MustCompile(`(?:^|[^A-Za-z0-9_$])id\s*:\s*(?:"(\d+)"|'(\d+)')`)

// Fragment is the interior of one brace-delimited span that carries an id marker.
type Fragment struct {
	// Body is the text between the delimiters, exclusive.
	Body string

	// OriginalID is the digits of the id marker.
	OriginalID string

	// Offset is the byte position of the opening delimiter in the source.
	Offset int
}

// Fragments scans source for brace-delimited spans whose interior carries an
// id marker, in source order.
//
// For each opening brace the span ends at the first closing brace after it.
// Spans without a marker are skipped and scanning resumes at the next opening
// brace, which may lie inside the rejected span; accepted spans resume after
// their closing brace.
func Fragments(source string) []Fragment {
	var out []Fragment

	pos := 0
	for pos < len(source) {
		open := strings.IndexByte(source[pos:], openDelim)
		if open < 0 {
			break
		}
		open += pos

		end := strings.IndexByte(source[open+1:], closeDelim)
		if end < 0 {
			break
		}
		end += open + 1

		body := source[open+1 : end]
		if id, ok := markerID(body); ok {
			out = append(out, Fragment{Body: body, OriginalID: id, Offset: open})
			pos = end + 1
			continue
		}
		pos = open + 1
	}

	return out
}

func markerID(body string) (string, bool) {
	m := idMarker.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}
