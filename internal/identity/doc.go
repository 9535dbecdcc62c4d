// Package identity derives stable primary keys for migrated records.
//
// Legacy records are keyed by short numeric strings. Their database rows are
// keyed by UUID v5 values computed from those strings, so re-running a
// migration always targets the same rows instead of inserting duplicates.
package identity
