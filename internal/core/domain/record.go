package domain

import (
	"bytes"
	"fmt"
)

// Record layout defaults.
const (
	// DefaultTokenSize is the token (nonce) length in bytes.
	DefaultTokenSize = 6

	// DefaultDigestSize is the truncated digest length in bytes.
	DefaultDigestSize = 10

	// MaxFieldSize bounds both token and digest sizes.
	MaxFieldSize = 64
)

// Layout describes the fixed sizes of a record.
type Layout struct {
	TokenSize  int `json:"nonce_size" yaml:"nonce_size"`
	DigestSize int `json:"hash_size" yaml:"hash_size"`
}

// DefaultLayout returns the 6-byte token, 10-byte digest layout.
func DefaultLayout() Layout {
	return Layout{
		TokenSize:  DefaultTokenSize,
		DigestSize: DefaultDigestSize,
	}
}

// RecordSize is the on-disk size of one Pair.
func (l Layout) RecordSize() int {
	return l.TokenSize + l.DigestSize
}

// Validate checks both sizes are within (0, MaxFieldSize].
func (l Layout) Validate() error {
	if l.TokenSize <= 0 || l.TokenSize > MaxFieldSize {
		return ErrInvalidLayout.WithDetails(fmt.Sprintf("nonce size %d not in [1, %d]", l.TokenSize, MaxFieldSize))
	}
	if l.DigestSize <= 0 || l.DigestSize > MaxFieldSize {
		return ErrInvalidLayout.WithDetails(fmt.Sprintf("hash size %d not in [1, %d]", l.DigestSize, MaxFieldSize))
	}
	return nil
}

// RecordsFor returns how many whole records fit in sizeBytes.
func (l Layout) RecordsFor(sizeBytes int64) int {
	if sizeBytes <= 0 {
		return 0
	}
	return int(sizeBytes / int64(l.RecordSize()))
}

// Tokens is a flat arena of fixed-size tokens.
type Tokens struct {
	size int
	buf  []byte
}

// NewTokens allocates a zeroed arena for n tokens of the given size.
func NewTokens(n, size int) Tokens {
	return Tokens{
		size: size,
		buf:  make([]byte, n*size),
	}
}

// TokensFromBytes wraps an existing arena. len(buf) must be a multiple of size.
func TokensFromBytes(buf []byte, size int) Tokens {
	return Tokens{size: size, buf: buf}
}

// Len returns the number of tokens.
func (t Tokens) Len() int {
	if t.size == 0 {
		return 0
	}
	return len(t.buf) / t.size
}

// Size returns the length of a single token.
func (t Tokens) Size() int {
	return t.size
}

// At returns token i. The returned slice has its capacity clipped to the token.
func (t Tokens) At(i int) []byte {
	lo := i * t.size
	hi := lo + t.size
	return t.buf[lo:hi:hi]
}

// Bytes returns the backing arena.
func (t Tokens) Bytes() []byte {
	return t.buf
}

// Pair is a digest together with the token it was computed from.
type Pair struct {
	Digest []byte
	Token  []byte
}

// ComparePairs orders pairs by unsigned lexicographic digest comparison.
func ComparePairs(a, b Pair) int {
	return bytes.Compare(a.Digest, b.Digest)
}

// AppendTo appends the serialized record (digest then token) to dst.
func (p Pair) AppendTo(dst []byte) []byte {
	dst = append(dst, p.Digest...)
	return append(dst, p.Token...)
}

// DecodePair splits a serialized record. rec must be exactly l.RecordSize() bytes;
// the returned pair aliases rec.
func DecodePair(l Layout, rec []byte) Pair {
	return Pair{
		Digest: rec[:l.DigestSize:l.DigestSize],
		Token:  rec[l.DigestSize:l.RecordSize():l.RecordSize()],
	}
}
