package config

import (
	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/core/service"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// BenchConfig is the root configuration of a benchmark run.
type BenchConfig struct {
	OutputPath     string        `koanf:"output_path" json:"output_path" yaml:"output_path"`
	FileSizeMB     int           `koanf:"file_size_mb" json:"file_size_mb" yaml:"file_size_mb"`
	HashThreads    int           `koanf:"hash_threads" json:"hash_threads" yaml:"hash_threads"`
	SortThreads    int           `koanf:"sort_threads" json:"sort_threads" yaml:"sort_threads"`
	WriteThreads   int           `koanf:"write_threads" json:"write_threads" yaml:"write_threads"`
	MemoryBudgetMB int           `koanf:"memory_budget_mb" json:"memory_budget_mb" yaml:"memory_budget_mb"`
	Algorithm      string        `koanf:"algorithm" json:"algorithm" yaml:"algorithm"`
	Seed           uint32        `koanf:"seed" json:"seed" yaml:"seed"`
	BufferSize     int           `koanf:"buffer_size" json:"buffer_size" yaml:"buffer_size"`
	HistoryDir     string        `koanf:"history_dir" json:"history_dir" yaml:"history_dir"`
	MetricsFile    string        `koanf:"metrics_file" json:"metrics_file" yaml:"metrics_file"`
	Record         RecordSection `koanf:"record" json:"record" yaml:"record"`
	Log            LogSection    `koanf:"log" json:"log" yaml:"log"`
}

// RecordSection sizes the on-disk record.
type RecordSection struct {
	NonceSize int `koanf:"nonce_size" json:"nonce_size" yaml:"nonce_size"`
	HashSize  int `koanf:"hash_size" json:"hash_size" yaml:"hash_size"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// Layout returns the record layout.
func (c *BenchConfig) Layout() domain.Layout {
	return domain.Layout{TokenSize: c.Record.NonceSize, DigestSize: c.Record.HashSize}
}

// PipelineConfig converts the configuration for service.NewPipeline.
func (c *BenchConfig) PipelineConfig() service.PipelineConfig {
	return service.PipelineConfig{
		OutputPath:     c.OutputPath,
		FileSizeMB:     c.FileSizeMB,
		HashThreads:    c.HashThreads,
		SortThreads:    c.SortThreads,
		WriteThreads:   c.WriteThreads,
		MemoryBudgetMB: c.MemoryBudgetMB,
		Layout:         c.Layout(),
		Algorithm:      digest.Algorithm(c.Algorithm),
		Seed:           c.Seed,
		BufferSize:     c.BufferSize,
	}
}
