package logger

import (
	"encoding/hex"
	"log/slog"
)

// maxHexBytes caps how much of a byte slice is rendered.
const maxHexBytes = 64

// renderAttr rewrites byte slices (digests, tokens) as lowercase hex
// instead of the handlers' default base64 or Go syntax.
func renderAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindAny:
		if b, ok := a.Value.Any().([]byte); ok {
			return slog.String(a.Key, Hex(b))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = renderAttr(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// Hex encodes b as lowercase hex, truncated to maxHexBytes with a "..."
// suffix.
func Hex(b []byte) string {
	if len(b) > maxHexBytes {
		return hex.EncodeToString(b[:maxHexBytes]) + "..."
	}
	return hex.EncodeToString(b)
}
