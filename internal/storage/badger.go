package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/core/service"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
)

// reportPrefix namespaces report keys.
var reportPrefix = []byte("report/")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("report store closed")

// BadgerStore implements ReportStore on Badger v3.
type BadgerStore struct {
	db     *badger.DB
	logger logger.Logger
}

// OpenBadgerStore opens (creating if needed) the history database.
func OpenBadgerStore(cfg StoreConfig, log logger.Logger) (*BadgerStore, error) {
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if log == nil {
		log = logger.Default()
	}

	opts := badger.DefaultOptions(cfg.Dir).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(&badgerLogger{logger: log.With("component", "badger")})
	if cfg.InMemory {
		opts.Dir, opts.ValueDir = "", ""
	}
	if cfg.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = cfg.ValueLogFileSize
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	log.Debug("report store opened", "dir", cfg.Dir, "in_memory", cfg.InMemory)
	return &BadgerStore{db: db, logger: log}, nil
}

func reportKey(runID string) []byte {
	return append(append([]byte{}, reportPrefix...), runID...)
}

// Save stores r under its run ID.
func (s *BadgerStore) Save(ctx context.Context, r *service.Report) error {
	if r.RunID == "" {
		return fmt.Errorf("save report: empty run id")
	}
	value, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", r.RunID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(reportKey(r.RunID), value)
	})
	if err != nil {
		return s.wrap("save report", err)
	}
	return nil
}

// Get retrieves the report for runID.
func (s *BadgerStore) Get(ctx context.Context, runID string) (*service.Report, error) {
	var r service.Report

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(reportKey(runID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrReportNotFound.WithDetails(runID)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return nil, s.wrap("get report", err)
	}
	return &r, nil
}

// List returns reports newest first.
func (s *BadgerStore) List(ctx context.Context, limit int) ([]*service.Report, error) {
	var reports []*service.Report

	err := s.scanNewestFirst(func(_ []byte, item *badger.Item) (bool, error) {
		var r service.Report
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		}); err != nil {
			return false, fmt.Errorf("decode %s: %w", item.Key(), err)
		}
		reports = append(reports, &r)
		return limit <= 0 || len(reports) < limit, nil
	}, true)
	if err != nil {
		return nil, s.wrap("list reports", err)
	}
	return reports, nil
}

// Delete removes the report for runID.
func (s *BadgerStore) Delete(ctx context.Context, runID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(reportKey(runID))
	})
	if err != nil {
		return s.wrap("delete report", err)
	}
	return nil
}

// Prune deletes all but the newest keep reports and returns how many were
// removed.
func (s *BadgerStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var stale [][]byte
	seen := 0
	err := s.scanNewestFirst(func(key []byte, _ *badger.Item) (bool, error) {
		seen++
		if seen > keep {
			stale = append(stale, key)
		}
		return true, nil
	}, false)
	if err != nil {
		return 0, s.wrap("prune reports", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range stale {
		if err := wb.Delete(key); err != nil {
			return 0, s.wrap("prune reports", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, s.wrap("prune reports", err)
	}

	if len(stale) > 0 {
		s.logger.Debug("pruned run reports", "deleted", len(stale), "kept", keep)
	}
	return len(stale), nil
}

// scanNewestFirst walks report keys in reverse order. fn receives a copy of
// the key and returns false to stop.
func (s *BadgerStore) scanNewestFirst(fn func(key []byte, item *badger.Item) (bool, error), values bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = reportPrefix
		opts.PrefetchValues = values
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, reportPrefix...), 0xff)
		for it.Seek(seek); it.Valid(); it.Next() {
			item := it.Item()
			more, err := fn(item.KeyCopy(nil), item)
			if err != nil {
				return err
			}
			if !more {
				break
			}
		}
		return nil
	})
}

// Size returns the on-disk size of the LSM tree and value log.
func (s *BadgerStore) Size() (lsm, vlog int64) {
	return s.db.Size()
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

func (s *BadgerStore) wrap(op string, err error) error {
	if errors.Is(err, badger.ErrDBClosed) {
		err = ErrClosed
	}
	return fmt.Errorf("%s: %w", op, err)
}

// badgerLogger adapts Logger to Badger's Logger interface. Badger's info
// output is startup chatter, so it goes to debug.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
