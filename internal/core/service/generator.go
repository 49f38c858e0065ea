package service

import (
	"encoding/binary"

	"github.com/valyala/fastrand"

	"github.com/yndnr/hashgen-go/internal/core/domain"
)

// Generator produces the in-memory working set of random tokens.
//
// The byte stream comes from a xorshift generator and is not suitable
// for anything that needs unpredictability.
type Generator struct {
	layout domain.Layout
	seed   uint32
}

// NewGenerator creates a generator for the given layout. A zero seed
// draws a fresh random seed on every Generate call; any other value
// makes the token stream reproducible.
func NewGenerator(layout domain.Layout, seed uint32) *Generator {
	return &Generator{
		layout: layout,
		seed:   seed,
	}
}

// Generate returns exactly n tokens.
func (g *Generator) Generate(n int) domain.Tokens {
	if n < 0 {
		n = 0
	}
	tokens := domain.NewTokens(n, g.layout.TokenSize)

	var rng fastrand.RNG
	if g.seed != 0 {
		rng.Seed(g.seed)
	}
	fillRandom(&rng, tokens.Bytes())

	return tokens
}

// fillRandom writes four bytes per RNG step and finishes the tail byte by byte.
func fillRandom(rng *fastrand.RNG, buf []byte) {
	i := 0
	for ; i+4 <= len(buf); i += 4 {
		binary.LittleEndian.PutUint32(buf[i:], rng.Uint32())
	}
	if i < len(buf) {
		var tail [4]byte
		binary.LittleEndian.PutUint32(tail[:], rng.Uint32())
		copy(buf[i:], tail[:])
	}
}
