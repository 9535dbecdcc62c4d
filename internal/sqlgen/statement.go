package sqlgen

import (
	"fmt"
	"io"
	"strings"
)

// Columns is the fixed insert column order.
var Columns = []string{
	"id", "full_name", "national_id", "gender", "status",
	"birth_date", "admission_date", "building",
	"room_number", "bed_number",
	"emergency_contact_name", "emergency_contact_phone", "emergency_contact_relationship",
}

const (
	// StatusActive and BuildingDefault are written on insert for every row.
	StatusActive    = "ACTIVE"
	BuildingDefault = "A"
)

// upsertFormat renders one record. Only full_name and national_id (plus the
// update timestamp) change on conflict; the remaining columns are insert-only,
// so room and bed assignments edited after the first load survive reruns.
const upsertFormat = `INSERT INTO %s (
    id, full_name, national_id, gender, status,
    birth_date, admission_date, building,
    room_number, bed_number,
    emergency_contact_name, emergency_contact_phone, emergency_contact_relationship
) VALUES (
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s,
    %s
)
ON CONFLICT (id) DO UPDATE SET
    full_name = EXCLUDED.full_name,
    national_id = EXCLUDED.national_id,
    updated_at = NOW();

`

func writeUpsert(w io.Writer, table string, n normalized) error {
	_, err := fmt.Fprintf(w, upsertFormat,
		table,
		n.id,
		n.fullName,
		n.nationalID,
		n.gender,
		Quote(StatusActive),
		n.birthDate,
		n.admissionDate,
		Quote(BuildingDefault),
		n.roomNumber,
		n.bedNumber,
		n.guardianName,
		n.guardianPhone,
		n.guardianRelation,
	)
	return err
}

func writeHeader(w io.Writer, count int, date string) error {
	_, err := fmt.Fprintf(w, "-- Inserting %d beneficiaries\n-- Generated: %s\n\n", count, date)
	return err
}

func writeVerification(w io.Writer, table string) error {
	_, err := fmt.Fprintf(w, "\n-- Verify count\n%s\n", VerificationQuery(table))
	return err
}

// VerificationQuery returns the trailing row-count statement for table.
func VerificationQuery(table string) string {
	name := table
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		name = table[i+1:]
	}
	return fmt.Sprintf("SELECT COUNT(*) as total_%s FROM %s;", name, table)
}
