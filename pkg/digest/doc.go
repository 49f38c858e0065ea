// Package digest provides the truncated digest functions used by the hasher.
//
// A digest is the first N bytes of a hash function's output. The
// function is treated as an opaque black box; no collision resistance
// is promised for the truncated value.
//
// Algorithms:
//
//   - blake3 (default): github.com/zeebo/blake3, 32-byte output
//   - blake2b: golang.org/x/crypto/blake2b, 32-byte output
//   - sha256: crypto/sha256, 32-byte output
//   - murmur3: github.com/spaolacci/murmur3, 16-byte output (not cryptographic)
//   - xxhash: github.com/cespare/xxhash/v2, 8-byte output (not cryptographic)
//
// The non-cryptographic functions exist to measure pipeline throughput
// with the hashing cost mostly removed.
package digest
