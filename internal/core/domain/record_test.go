package domain

import (
	"bytes"
	"errors"
	"testing"
)

func TestLayout_Default(t *testing.T) {
	l := DefaultLayout()
	if l.TokenSize != 6 || l.DigestSize != 10 {
		t.Fatalf("DefaultLayout() = %+v, want {6 10}", l)
	}
	if got := l.RecordSize(); got != 16 {
		t.Errorf("RecordSize() = %d, want 16", got)
	}
}

func TestLayout_RecordsFor(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		size   int64
		want   int
	}{
		{"1 MiB default", DefaultLayout(), 1 << 20, 65536},
		{"zero", DefaultLayout(), 0, 0},
		{"negative", DefaultLayout(), -16, 0},
		{"partial record dropped", DefaultLayout(), 33, 2},
		{"custom layout", Layout{TokenSize: 8, DigestSize: 8}, 1 << 20, 65536},
		{"odd layout", Layout{TokenSize: 4, DigestSize: 3}, 100, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout.RecordsFor(tt.size); got != tt.want {
				t.Errorf("RecordsFor(%d) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{"default", DefaultLayout(), false},
		{"max sizes", Layout{TokenSize: MaxFieldSize, DigestSize: MaxFieldSize}, false},
		{"zero token", Layout{TokenSize: 0, DigestSize: 10}, true},
		{"zero digest", Layout{TokenSize: 6, DigestSize: 0}, true},
		{"oversized digest", Layout{TokenSize: 6, DigestSize: MaxFieldSize + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Validate() error = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestTokens_At(t *testing.T) {
	tokens := NewTokens(3, 4)
	if tokens.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tokens.Len())
	}
	for i := range tokens.Bytes() {
		tokens.Bytes()[i] = byte(i)
	}

	if got := tokens.At(1); !bytes.Equal(got, []byte{4, 5, 6, 7}) {
		t.Errorf("At(1) = %v, want [4 5 6 7]", got)
	}

	// Appending to a token must not clobber its neighbour.
	tok := tokens.At(0)
	_ = append(tok, 0xff)
	if tokens.At(1)[0] != 4 {
		t.Error("append to At(0) overwrote At(1)")
	}
}

func TestTokens_Empty(t *testing.T) {
	var zero Tokens
	if zero.Len() != 0 {
		t.Errorf("zero Tokens Len() = %d, want 0", zero.Len())
	}
	if NewTokens(0, 6).Len() != 0 {
		t.Error("NewTokens(0, 6) should be empty")
	}
}

func TestPair_AppendAndDecode(t *testing.T) {
	l := Layout{TokenSize: 2, DigestSize: 3}
	p := Pair{Digest: []byte{1, 2, 3}, Token: []byte{9, 8}}

	rec := p.AppendTo(nil)
	if !bytes.Equal(rec, []byte{1, 2, 3, 9, 8}) {
		t.Fatalf("AppendTo() = %v", rec)
	}

	got := DecodePair(l, rec)
	if !bytes.Equal(got.Digest, p.Digest) || !bytes.Equal(got.Token, p.Token) {
		t.Errorf("DecodePair() = %+v, want %+v", got, p)
	}
}

func TestComparePairs(t *testing.T) {
	lo := Pair{Digest: []byte{0x00, 0xff}}
	hi := Pair{Digest: []byte{0x80, 0x00}}

	if ComparePairs(lo, hi) >= 0 {
		t.Error("0x00ff should sort before 0x8000 (unsigned compare)")
	}
	if ComparePairs(hi, lo) <= 0 {
		t.Error("0x8000 should sort after 0x00ff")
	}
	if ComparePairs(lo, lo) != 0 {
		t.Error("equal digests should compare equal")
	}
}
