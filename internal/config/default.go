package config

import (
	"runtime"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/core/service"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// Default configuration values.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Default returns the default configuration. OutputPath and FileSizeMB have
// no default and must be supplied.
func Default() *BenchConfig {
	n := runtime.NumCPU()
	return &BenchConfig{
		HashThreads:  n,
		SortThreads:  n,
		WriteThreads: n,
		Algorithm:    string(digest.Default),
		BufferSize:   service.DefaultBufferSize,
		Record: RecordSection{
			NonceSize: domain.DefaultTokenSize,
			HashSize:  domain.DefaultDigestSize,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
