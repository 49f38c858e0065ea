// Package digest provides the truncated digest functions used by the hasher.
package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/yndnr/hashgen-go/internal/core/domain"
)

// Algorithm names a registered hash function.
type Algorithm string

const (
	Blake3  Algorithm = "blake3"
	Blake2b Algorithm = "blake2b"
	SHA256  Algorithm = "sha256"
	Murmur3 Algorithm = "murmur3"
	XXHash  Algorithm = "xxhash"
)

// Default is the algorithm used when none is configured.
const Default = Blake3

// Func writes Truncate(Hash(src), len(dst)) into dst.
//
// Implementations keep the full hash on the stack so that calling a Func
// from many goroutines does not allocate.
type Func func(dst, src []byte)

type algorithm struct {
	outputSize int
	fn         Func
}

var registry = map[Algorithm]algorithm{
	Blake3: {32, func(dst, src []byte) {
		sum := blake3.Sum256(src)
		copy(dst, sum[:])
	}},
	Blake2b: {32, func(dst, src []byte) {
		sum := blake2b.Sum256(src)
		copy(dst, sum[:])
	}},
	SHA256: {32, func(dst, src []byte) {
		sum := sha256.Sum256(src)
		copy(dst, sum[:])
	}},
	Murmur3: {16, func(dst, src []byte) {
		var sum [16]byte
		h1, h2 := murmur3.Sum128(src)
		binary.BigEndian.PutUint64(sum[:8], h1)
		binary.BigEndian.PutUint64(sum[8:], h2)
		copy(dst, sum[:])
	}},
	XXHash: {8, func(dst, src []byte) {
		var sum [8]byte
		binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(src))
		copy(dst, sum[:])
	}},
}

// Algorithms returns the registered algorithm names in sorted order.
func Algorithms() []Algorithm {
	names := make([]Algorithm, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// OutputSize returns the untruncated output length of alg in bytes.
func OutputSize(alg Algorithm) (int, error) {
	a, ok := registry[alg]
	if !ok {
		return 0, domain.ErrUnknownAlgorithm.WithDetails(string(alg))
	}
	return a.outputSize, nil
}

// New returns the digest function for alg truncated to size bytes.
func New(alg Algorithm, size int) (Func, error) {
	a, ok := registry[alg]
	if !ok {
		return nil, domain.ErrUnknownAlgorithm.WithDetails(string(alg))
	}
	if size <= 0 || size > a.outputSize {
		return nil, domain.ErrDigestTooLong.WithDetails(
			fmt.Sprintf("%s produces %d bytes, requested %d", alg, a.outputSize, size))
	}
	return a.fn, nil
}

// Sum computes the truncated digest of data into a fresh slice.
func Sum(alg Algorithm, size int, data []byte) ([]byte, error) {
	fn, err := New(alg, size)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, size)
	fn(dst, data)
	return dst, nil
}
