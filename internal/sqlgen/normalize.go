package sqlgen

import (
	"strings"

	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// MaleToken is the source-language value that maps to MALE.
const MaleToken = "ذكر"

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// NormalizeGender maps MaleToken to MALE and everything else, absence
// included, to FEMALE. The mapping is binary on purpose; the target enum of
// the first migration has only these two values.
func NormalizeGender(value string, present bool) string {
	if present && value == MaleToken {
		return GenderMale
	}
	return GenderFemale
}

// NormalizeDate replaces every "/" with "-". The result is not validated;
// malformed dates are rejected by the database when the batch is executed.
func NormalizeDate(value string, present bool) (string, bool) {
	if !present || value == "" {
		return "", false
	}
	return strings.ReplaceAll(value, "/", "-"), true
}

// normalized is one record with every column rendered as an SQL literal.
type normalized struct {
	id               string
	fullName         string
	nationalID       string
	gender           string
	birthDate        string
	admissionDate    string
	roomNumber       string
	bedNumber        string
	guardianName     string
	guardianPhone    string
	guardianRelation string
}

func normalize(id string, r pgseed.Record) normalized {
	return normalized{
		id:               Quote(id),
		fullName:         Literal(r.Value(pgseed.FieldFullName)),
		nationalID:       Literal(r.Value(pgseed.FieldNationalID)),
		gender:           Quote(NormalizeGender(r.Value(pgseed.FieldGender))),
		birthDate:        Literal(NormalizeDate(r.Value(pgseed.FieldBirthDate))),
		admissionDate:    Literal(NormalizeDate(r.Value(pgseed.FieldEnrollmentDate))),
		roomNumber:       Literal(r.Value(pgseed.FieldRoomNumber)),
		bedNumber:        Literal(r.Value(pgseed.FieldBedNumber)),
		guardianName:     Literal(r.Value(pgseed.FieldGuardianName)),
		guardianPhone:    Literal(r.Value(pgseed.FieldGuardianPhone)),
		guardianRelation: Literal(r.Value(pgseed.FieldGuardianRelation)),
	}
}
