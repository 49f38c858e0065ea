package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// Verify validates cfg and reports every problem it finds. The returned
// error wraps domain.ErrInvalidConfig.
func Verify(cfg *BenchConfig) error {
	var result *multierror.Error

	if cfg.OutputPath == "" {
		result = multierror.Append(result, errors.New("output_path is required"))
	} else if strings.HasSuffix(cfg.OutputPath, string(filepath.Separator)) {
		result = multierror.Append(result, fmt.Errorf("output_path %q names a directory", cfg.OutputPath))
	}
	if cfg.FileSizeMB <= 0 {
		result = multierror.Append(result, fmt.Errorf("file_size_mb must be positive, got %d", cfg.FileSizeMB))
	}

	for _, t := range []struct {
		key string
		n   int
	}{
		{"hash_threads", cfg.HashThreads},
		{"sort_threads", cfg.SortThreads},
		{"write_threads", cfg.WriteThreads},
	} {
		if t.n < 1 {
			result = multierror.Append(result, fmt.Errorf("%s must be at least 1, got %d", t.key, t.n))
		}
	}

	if cfg.MemoryBudgetMB < 0 {
		result = multierror.Append(result, fmt.Errorf("memory_budget_mb must not be negative, got %d", cfg.MemoryBudgetMB))
	}
	if cfg.BufferSize < 0 {
		result = multierror.Append(result, fmt.Errorf("buffer_size must not be negative, got %d", cfg.BufferSize))
	}

	result = multierror.Append(result, verifyRecord(cfg))

	if !logger.ValidLevel(cfg.Log.Level) {
		result = multierror.Append(result, fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level))
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "json", "text", "console":
	default:
		result = multierror.Append(result, fmt.Errorf("log.format %q is not json or text", cfg.Log.Format))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// verifyRecord checks the layout and that the algorithm can produce
// record.hash_size bytes. It returns nil when there is nothing to report.
func verifyRecord(cfg *BenchConfig) error {
	if err := cfg.Layout().Validate(); err != nil {
		return err
	}
	if _, err := digest.New(digest.Algorithm(cfg.Algorithm), cfg.Record.HashSize); err != nil {
		return err
	}
	return nil
}
