// Package checksum fingerprints SQL content.
//
//   - Raw checksum: SHA-256 of the exact bytes.
//   - Normalized checksum: SHA-256 after dropping SQL comments and collapsing
//     whitespace outside string literals. Case and literal contents are kept.
//
// The generator's header is made of comments (including the generation date),
// so the normalized checksum of two runs over the same input is identical.
// The exec command logs it per file so an applied batch can be matched to the
// run that produced it.
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
