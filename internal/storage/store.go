package storage

import (
	"context"

	"github.com/yndnr/hashgen-go/internal/core/service"
)

// ReportStore persists run reports.
type ReportStore interface {
	// Save stores r under r.RunID, replacing any previous report.
	Save(ctx context.Context, r *service.Report) error

	// Get returns the report for runID or domain.ErrReportNotFound.
	Get(ctx context.Context, runID string) (*service.Report, error)

	// List returns up to limit reports, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*service.Report, error)

	// Delete removes the report for runID. Missing reports are not an error.
	Delete(ctx context.Context, runID string) error

	// Prune keeps the newest keep reports and deletes the rest.
	Prune(ctx context.Context, keep int) (int, error)

	Close() error
}

// StoreConfig configures a BadgerStore.
type StoreConfig struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir string
	// InMemory keeps the database in memory only.
	InMemory bool
	// SyncWrites fsyncs every write.
	SyncWrites bool
	// ValueLogFileSize caps each value log file.
	ValueLogFileSize int64
}

// DefaultStoreConfig returns a configuration for a history database in dir.
// Reports are small, so the value log is kept far below Badger's default.
func DefaultStoreConfig(dir string) StoreConfig {
	return StoreConfig{
		Dir:              dir,
		SyncWrites:       true,
		ValueLogFileSize: 16 << 20,
	}
}
