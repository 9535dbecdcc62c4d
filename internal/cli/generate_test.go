package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

const cliSource = `export const beneficiaries = [
  { id: "7", fullName: "Layla Hassan", gender: "أنثى", dob: "1948/11/02", roomNumber: "12" },
  { id: "8", fullName: "Omar", gender: "ذكر" },
];
`

func TestGenerateCommand_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beneficiaries.ts")
	output := filepath.Join(dir, "seed.sql")
	require.NoError(t, os.WriteFile(input, []byte(cliSource), 0o644))

	stderr, err := runRoot(t, "generate", "--input", input, "--output", output)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Found 2 beneficiaries to insert")
	assert.Contains(t, stderr, "Total INSERT statements: 2")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	sql := string(content)
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO beneficiaries"))
	assert.Contains(t, sql, "'Layla Hassan'")
	assert.Contains(t, sql, "'1948-11-02'")
}

func TestGenerateCommand_CustomTable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beneficiaries.ts")
	output := filepath.Join(dir, "seed.sql")
	require.NoError(t, os.WriteFile(input, []byte(cliSource), 0o644))

	_, err := runRoot(t, "generate", "-i", input, "-o", output, "--table", "care.residents")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "INSERT INTO care.residents")
}

func TestGenerateCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := runRoot(t, "generate", "--input", filepath.Join(dir, "absent.ts"), "--output", filepath.Join(dir, "out.sql"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pgseed.ErrInputNotFound)
	assert.Equal(t, pgseed.ExitInputMissing, pgseed.ExitCodeForError(err))

	_, statErr := os.Stat(filepath.Join(dir, "out.sql"))
	assert.True(t, os.IsNotExist(statErr), "no output expected when input is missing")
}

func TestGenerateCommand_InvalidTable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beneficiaries.ts")
	require.NoError(t, os.WriteFile(input, []byte(cliSource), 0o644))

	_, err := runRoot(t, "generate", "-i", input, "-o", filepath.Join(dir, "out.sql"), "--table", "x; DROP TABLE y")
	require.Error(t, err)
	assert.Equal(t, pgseed.ExitConfigError, pgseed.ExitCodeForError(err))
}

func TestGenerateCommand_RejectsArgs(t *testing.T) {
	_, err := runRoot(t, "generate", "extra")
	require.Error(t, err)
	assert.Equal(t, pgseed.ExitUsageError, pgseed.ExitCodeForError(err))
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "people.ts")
	output := filepath.Join(dir, "people.sql")
	require.NoError(t, os.WriteFile(input, []byte(cliSource), 0o644))

	cfgPath := filepath.Join(dir, "pgseed.yaml")
	yaml := "generate:\n  input: " + input + "\n  output: " + output + "\n  table: residents\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	_, err := runRoot(t, "generate", "--config", cfgPath)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "INSERT INTO residents")
}

func TestGenerateCommand_FlagBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "people.ts")
	output := filepath.Join(dir, "people.sql")
	require.NoError(t, os.WriteFile(input, []byte(cliSource), 0o644))

	cfgPath := filepath.Join(dir, "pgseed.yaml")
	yaml := "generate:\n  input: " + input + "\n  output: " + output + "\n  table: residents\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	_, err := runRoot(t, "generate", "--config", cfgPath, "--table", "beneficiaries_v2")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "INSERT INTO beneficiaries_v2")
}

func TestGenerateCommand_MissingExplicitConfig(t *testing.T) {
	_, err := runRoot(t, "generate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pgseed.ErrInvalidConfig)
}
