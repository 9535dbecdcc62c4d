package identity

import (
	"github.com/google/uuid"
)

// NamespaceBeneficiary is the fixed UUID namespace for beneficiary identities.
// It is the RFC 4122 DNS namespace; changing it would re-key every migrated row.
var NamespaceBeneficiary = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// NamePrefix is prepended to the original identifier before hashing.
const NamePrefix = "beneficiary-"

// Derive returns the deterministic UUID v5 for a legacy identifier.
//
// Algorithm:
//   - Name: NamePrefix + originalID (no normalization; "01" and "1" differ)
//   - UUID v5 (SHA-1) in NamespaceBeneficiary
//
// Examples:
//   - "1"   → aff9d789-95e3-5d56-b2ce-1d5d02f4fc8f
//   - ""    → 011053a4-adc4-50f3-b0c0-61bea8c1b7b8 (the bare prefix)
func Derive(originalID string) uuid.UUID {
	return uuid.NewSHA1(NamespaceBeneficiary, []byte(NamePrefix+originalID))
}

// DeriveString returns Derive(originalID) in canonical lowercase text form.
func DeriveString(originalID string) string {
	return Derive(originalID).String()
}
