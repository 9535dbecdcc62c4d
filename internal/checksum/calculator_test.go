package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse whitespace", "SELECT  1,\n\t2;", "SELECT 1, 2;"},
		{"line comment", "-- header\nSELECT 1; -- trailing\n", "SELECT 1;"},
		{"block comment", "SELECT /* x */ 1;", "SELECT 1;"},
		{"nested block comment", "SELECT /* a /* b */ c */ 1;", "SELECT 1;"},
		{"literal keeps spacing", "SELECT 'a  --  b';", "SELECT 'a  --  b';"},
		{"literal with doubled quote", "SELECT 'it''s  here';", "SELECT 'it''s  here';"},
		{"dollar quoted body kept", "DO $$ BEGIN  -- keep\n END $$;", "DO $$ BEGIN  -- keep\n END $$;"},
		{"tagged dollar quote", "SELECT $fn$ a  b $fn$;", "SELECT $fn$ a  b $fn$;"},
		{"positional parameter", "SELECT $1;", "SELECT $1;"},
		{"case preserved", "'MALE' 'male'", "'MALE' 'male'"},
		{"empty", "", ""},
		{"only comments", "-- a\n/* b */", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestCalculateNormalized_IgnoresGeneratedHeader(t *testing.T) {
	c := New()

	first := "-- Inserting 1 beneficiaries\n-- Generated: 2025-12-23\n\nINSERT INTO t VALUES ('a');\n"
	second := "-- Inserting 1 beneficiaries\n-- Generated: 2026-01-05\n\nINSERT INTO t VALUES ('a');\n"

	assert.Equal(t, c.CalculateNormalized([]byte(first)), c.CalculateNormalized([]byte(second)))
	assert.NotEqual(t, c.CalculateRaw([]byte(first)), c.CalculateRaw([]byte(second)))
}

func TestCalculateNormalized_DetectsValueChanges(t *testing.T) {
	c := New()

	a := c.CalculateNormalized([]byte("INSERT INTO t VALUES ('MALE');"))
	b := c.CalculateNormalized([]byte("INSERT INTO t VALUES ('FEMALE');"))
	assert.NotEqual(t, a, b)
}

func TestCalculateRaw_KnownValue(t *testing.T) {
	// sha256("") is a well-known constant.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", New().CalculateRaw(nil))
}
