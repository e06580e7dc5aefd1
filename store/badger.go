package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/amonks/mindful/task"
)

// BadgerDir is the database directory name inside the store directory.
const BadgerDir = "badger"

var (
	taskPrefix     = []byte("task/")
	emotionPrefix  = []byte("emotion/")
	emotionSeqKey  = []byte("seq/emotion")
	seqBandwidth   = uint64(100)
	errNilTaskItem = errors.New("nil task record")
)

// BadgerConfig holds configuration for a Badger-backed store.
type BadgerConfig struct {
	// Path is the directory for Badger files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives Badger's internal logs. If nil, they are discarded.
	Logger *slog.Logger
}

// BadgerStore persists the board in an embedded Badger key-value store.
// Badger holds an exclusive lock on its directory, so only one process
// may have the store open at a time.
//
// Keys:
//
//	task/<id>                       -> JSON task record
//	emotion/<timestamp>/<sequence>  -> JSON emotional state
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
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

// OpenBadgerStore opens a Badger database at cfg.Path, or in memory.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	seq, err := db.GetSequence(emotionSeqKey, seqBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open emotion sequence: %w", err)
	}

	return &BadgerStore{db: db, seq: seq}, nil
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	seqErr := s.seq.Release()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger database: %w", err)
	}
	if seqErr != nil {
		return fmt.Errorf("release emotion sequence: %w", seqErr)
	}
	return nil
}

type badgerTaskRecord struct {
	Position int       `json:"position"`
	Task     task.Task `json:"task"`
}

// LoadTasks returns tasks in the order they were last saved.
func (s *BadgerStore) LoadTasks(ctx context.Context) ([]task.Task, error) {
	var records []badgerTaskRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, taskPrefix, func(_ []byte, value []byte) error {
			var record badgerTaskRecord
			if err := json.Unmarshal(value, &record); err != nil {
				return err
			}
			if record.Task.ID == "" {
				return errNilTaskItem
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})
	var tasks []task.Task
	for _, record := range records {
		tasks = append(tasks, record.Task)
	}
	return tasks, nil
}

// SaveTasks deletes every task key and writes the new set in one transaction.
func (s *BadgerStore) SaveTasks(ctx context.Context, tasks []task.Task) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte
		scanKeys(txn, taskPrefix, func(key []byte) {
			stale = append(stale, key)
		})
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		for i, t := range tasks {
			value, err := json.Marshal(badgerTaskRecord{Position: i, Task: t})
			if err != nil {
				return fmt.Errorf("encode task %s: %w", t.ID, err)
			}
			if err := txn.Set(taskKey(t.ID), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// LoadEmotions returns the log ordered by timestamp, then insertion.
func (s *BadgerStore) LoadEmotions(ctx context.Context) ([]task.EmotionalState, error) {
	var emotions []task.EmotionalState
	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, emotionPrefix, func(_ []byte, value []byte) error {
			var entry task.EmotionalState
			if err := json.Unmarshal(value, &entry); err != nil {
				return err
			}
			emotions = append(emotions, entry)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read emotions: %w", err)
	}
	return emotions, nil
}

// SaveEmotion appends one log entry under a sequence-ordered key.
func (s *BadgerStore) SaveEmotion(ctx context.Context, entry task.EmotionalState) error {
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next emotion sequence: %w", err)
	}
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode emotion: %w", err)
	}
	key := []byte(fmt.Sprintf("%s%020d/%020d", emotionPrefix, entry.Timestamp, n))
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("append emotion: %w", err)
	}
	return nil
}

// Clear drops all task and emotion keys.
func (s *BadgerStore) Clear(ctx context.Context) error {
	if err := s.db.DropPrefix(taskPrefix, emotionPrefix); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

func taskKey(id string) []byte {
	return append(bytes.Clone(taskPrefix), id...)
}

func scanPrefix(txn *badger.Txn, prefix []byte, fn func(key, value []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := fn(item.KeyCopy(nil), value); err != nil {
			return fmt.Errorf("decode %s: %w", item.Key(), err)
		}
	}
	return nil
}

func scanKeys(txn *badger.Txn, prefix []byte, fn func(key []byte)) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		fn(it.Item().KeyCopy(nil))
	}
}
