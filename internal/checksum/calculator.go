package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator computes checksums of SQL content.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum that ignores comments and
	// formatting.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator using SHA-256. It is a zero-size value type.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of Normalize(content).
func (SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

var _ Calculator = SHA256{}

// Normalize removes SQL comments and collapses whitespace runs outside
// string literals to one space. Single-quoted ('' escapes) and dollar-quoted
// literals are copied verbatim.
func Normalize(sql string) string {
	n := normalizer{src: sql}
	n.b.Grow(len(sql))
	n.run()
	return strings.TrimSpace(n.b.String())
}

type normalizer struct {
	src        string
	i          int
	b          strings.Builder
	pendingGap bool
}

func (n *normalizer) peek(off int) byte {
	if n.i+off < len(n.src) {
		return n.src[n.i+off]
	}
	return 0
}

// gap records whitespace or a removed comment; it is emitted as a single
// space before the next token.
func (n *normalizer) gap() {
	n.pendingGap = true
}

func (n *normalizer) emit(s string) {
	if n.pendingGap && n.b.Len() > 0 {
		n.b.WriteByte(' ')
	}
	n.pendingGap = false
	n.b.WriteString(s)
}

func (n *normalizer) run() {
	for n.i < len(n.src) {
		ch := n.src[n.i]
		switch {
		case ch == '-' && n.peek(1) == '-':
			n.skipLineComment()
		case ch == '/' && n.peek(1) == '*':
			n.skipBlockComment()
		case ch == '\'':
			n.copySingleQuoted()
		case ch == '$':
			n.copyDollarQuoted()
		case isSpace(ch):
			n.gap()
			n.i++
		default:
			n.emit(n.src[n.i : n.i+1])
			n.i++
		}
	}
}

func (n *normalizer) skipLineComment() {
	end := strings.IndexByte(n.src[n.i:], '\n')
	if end < 0 {
		n.i = len(n.src)
	} else {
		n.i += end + 1
	}
	n.gap()
}

// skipBlockComment honours PostgreSQL's nested /* */ comments.
func (n *normalizer) skipBlockComment() {
	depth := 0
	for n.i < len(n.src) {
		switch {
		case n.src[n.i] == '/' && n.peek(1) == '*':
			depth++
			n.i += 2
		case n.src[n.i] == '*' && n.peek(1) == '/':
			depth--
			n.i += 2
			if depth == 0 {
				n.gap()
				return
			}
		default:
			n.i++
		}
	}
	n.gap()
}

func (n *normalizer) copySingleQuoted() {
	start := n.i
	n.i++
	for n.i < len(n.src) {
		if n.src[n.i] == '\'' {
			if n.peek(1) == '\'' {
				n.i += 2
				continue
			}
			n.i++
			break
		}
		n.i++
	}
	n.emit(n.src[start:n.i])
}

func (n *normalizer) copyDollarQuoted() {
	tag := dollarTag(n.src, n.i)
	if tag == "" {
		n.emit("$")
		n.i++
		return
	}

	start := n.i
	body := n.i + len(tag)
	end := strings.Index(n.src[body:], tag)
	if end < 0 {
		n.i = len(n.src)
	} else {
		n.i = body + end + len(tag)
	}
	n.emit(n.src[start:n.i])
}

// dollarTag returns the tag ("$$" or "$name$") starting at i, or "".
func dollarTag(s string, i int) string {
	for j := i + 1; j < len(s); j++ {
		ch := s[j]
		if ch == '$' {
			return s[i : j+1]
		}
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
		isDigit := ch >= '0' && ch <= '9'
		if !isLetter && !(isDigit && j > i+1) {
			return ""
		}
	}
	return ""
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}
