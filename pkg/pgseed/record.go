package pgseed

// Field names a value extracted from a source object literal.
// The string value is the key as it appears in the source text.
type Field string

const (
	FieldFullName         Field = "fullName"
	FieldNationalID       Field = "nationalId"
	FieldGender           Field = "gender"
	FieldBirthDate        Field = "dob"
	FieldRoomNumber       Field = "roomNumber"
	FieldBedNumber        Field = "bedNumber"
	FieldEnrollmentDate   Field = "enrollmentDate"
	FieldGuardianName     Field = "guardianName"
	FieldGuardianPhone    Field = "guardianPhone"
	FieldGuardianRelation Field = "guardianRelation"
)

// Fields lists every extracted field in extraction order.
var Fields = []Field{
	FieldFullName,
	FieldNationalID,
	FieldGender,
	FieldBirthDate,
	FieldRoomNumber,
	FieldBedNumber,
	FieldEnrollmentDate,
	FieldGuardianName,
	FieldGuardianPhone,
	FieldGuardianRelation,
}

// Record is one beneficiary pulled out of the source text.
// OriginalID is always set; every other field is optional.
// A Record is immutable once built.
type Record struct {
	OriginalID string
	values     map[Field]string
}

// NewRecord builds a Record. The values map is copied.
func NewRecord(originalID string, values map[Field]string) Record {
	copied := make(map[Field]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Record{OriginalID: originalID, values: copied}
}

// Value returns the field value and whether it was present in the source.
func (r Record) Value(f Field) (string, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Has reports whether the field was present in the source.
func (r Record) Has(f Field) bool {
	_, ok := r.values[f]
	return ok
}
