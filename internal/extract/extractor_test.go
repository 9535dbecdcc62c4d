package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

func value(t *testing.T, r pgseed.Record, f pgseed.Field) string {
	t.Helper()
	v, ok := r.Value(f)
	require.True(t, ok, "field %s missing", f)
	return v
}

func TestExtract_AllFields(t *testing.T) {
	src := `{
    id: "42",
    fullName: "عبدالله محمد",
    nationalId: '1012345678',
    gender: "ذكر",
    dob: "1980/05/01",
    roomNumber: "101",
    bedNumber: "2",
    enrollmentDate: "2015/01/20",
    guardianName: "محمد",
    guardianPhone: "0500000000",
    guardianRelation: "أخ",
  }`

	records := Extract(src)
	require.Len(t, records, 1)
	r := records[0]

	assert.Equal(t, "42", r.OriginalID)
	assert.Equal(t, "عبدالله محمد", value(t, r, pgseed.FieldFullName))
	assert.Equal(t, "1012345678", value(t, r, pgseed.FieldNationalID))
	assert.Equal(t, "ذكر", value(t, r, pgseed.FieldGender))
	assert.Equal(t, "1980/05/01", value(t, r, pgseed.FieldBirthDate))
	assert.Equal(t, "101", value(t, r, pgseed.FieldRoomNumber))
	assert.Equal(t, "2", value(t, r, pgseed.FieldBedNumber))
	assert.Equal(t, "2015/01/20", value(t, r, pgseed.FieldEnrollmentDate))
	assert.Equal(t, "محمد", value(t, r, pgseed.FieldGuardianName))
	assert.Equal(t, "0500000000", value(t, r, pgseed.FieldGuardianPhone))
	assert.Equal(t, "أخ", value(t, r, pgseed.FieldGuardianRelation))
}

func TestExtract_MissingFieldsAreAbsent(t *testing.T) {
	records := Extract(`{id: "2", fullName: "B", roomNumber: "102"}`)
	require.Len(t, records, 1)

	r := records[0]
	assert.True(t, r.Has(pgseed.FieldRoomNumber))
	for _, f := range []pgseed.Field{pgseed.FieldGender, pgseed.FieldNationalID, pgseed.FieldBirthDate, pgseed.FieldGuardianPhone} {
		assert.False(t, r.Has(f), "field %s should be absent", f)
	}
}

func TestExtract_CompletenessAndOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("export const beneficiaries = [\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&b, "  { id: \"%d\", fullName: \"Person %d\" },\n", i, i)
	}
	b.WriteString("];\n")

	records := Extract(b.String())
	require.Len(t, records, 25)
	for i, r := range records {
		assert.Equal(t, fmt.Sprint(i+1), r.OriginalID)
		assert.Equal(t, fmt.Sprintf("Person %d", i+1), value(t, r, pgseed.FieldFullName))
	}
}

func TestExtract_DropsFragmentsWithoutFullName(t *testing.T) {
	base := `{ id: "1", fullName: "A" }
{ id: "2", fullName: "B" }
{ id: "3", fullName: "C" }`

	records, stats := ExtractWithStats(base)
	require.Len(t, records, 3)
	assert.Equal(t, 0, stats.Dropped)

	withNameless := base + "\n{ id: \"4\", gender: \"ذكر\" }"
	records, stats = ExtractWithStats(withNameless)
	assert.Len(t, records, 3)
	assert.Equal(t, 4, stats.Fragments)
	assert.Equal(t, 1, stats.Dropped)

	withTwoNameless := withNameless + "\n{ id: \"5\", fullName: \"\" }"
	records, stats = ExtractWithStats(withTwoNameless)
	assert.Len(t, records, 3)
	assert.Equal(t, 2, stats.Dropped)
}

func TestExtract_QuoteStyles(t *testing.T) {
	records := Extract(`{ id: '9', fullName: "O'Brien", guardianName: 'He said "hi"' }`)
	require.Len(t, records, 1)

	assert.Equal(t, "9", records[0].OriginalID)
	assert.Equal(t, "O'Brien", value(t, records[0], pgseed.FieldFullName))
	assert.Equal(t, `He said "hi"`, value(t, records[0], pgseed.FieldGuardianName))
}

func TestExtract_KeyBoundary(t *testing.T) {
	// "xfullName" is not "fullName".
	records := Extract(`{ id: "3", xfullName: "Wrong", fullName: "Right" }`)
	require.Len(t, records, 1)
	assert.Equal(t, "Right", value(t, records[0], pgseed.FieldFullName))

	assert.Empty(t, Extract(`{ id: "3", xfullName: "Wrong" }`))
}

func TestExtract_FirstOccurrenceWins(t *testing.T) {
	records := Extract(`{ id: "3", fullName: "First", fullName: "Second" }`)
	require.Len(t, records, 1)
	assert.Equal(t, "First", value(t, records[0], pgseed.FieldFullName))
}

func TestExtract_Deterministic(t *testing.T) {
	src := `{id: "1", fullName: "A", gender: "ذكر"} {id: "2", fullName: "B"}`

	first := Extract(src)
	second := Extract(src)
	assert.Equal(t, first, second)
}

func TestExtract_Empty(t *testing.T) {
	records, stats := ExtractWithStats("")
	assert.Empty(t, records)
	assert.NotNil(t, records)
	assert.Equal(t, Stats{}, stats)
}
