package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/amonks/mindful/task"
)

const (
	// TasksFile is the name of the JSONL file containing tasks.
	TasksFile = "tasks.jsonl"

	// EmotionsFile is the name of the JSONL file containing the emotional log.
	EmotionsFile = "emotions.jsonl"

	lockFile = "store.lock"

	maxJSONLineBytes = 1024 * 1024
)

// FileStore keeps tasks and emotions as JSONL files in a directory.
// Writers across processes are serialized with an advisory lock.
type FileStore struct {
	dir string
}

// OpenFileStore returns a file store rooted at dir. The directory is
// created on first write.
func OpenFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// WatchPath returns the directory holding the store files.
func (s *FileStore) WatchPath() string {
	return s.dir
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadTasks reads all tasks from the store.
func (s *FileStore) LoadTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	err := s.withLock(func() error {
		var err error
		tasks, err = readJSONL[task.Task](s.path(TasksFile))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return tasks, nil
}

// SaveTasks overwrites the task file.
func (s *FileStore) SaveTasks(ctx context.Context, tasks []task.Task) error {
	err := s.withLock(func() error {
		return writeJSONL(s.path(TasksFile), tasks)
	})
	if err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// LoadEmotions reads the emotional log.
func (s *FileStore) LoadEmotions(ctx context.Context) ([]task.EmotionalState, error) {
	var emotions []task.EmotionalState
	err := s.withLock(func() error {
		var err error
		emotions, err = readJSONL[task.EmotionalState](s.path(EmotionsFile))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read emotions: %w", err)
	}
	return emotions, nil
}

// SaveEmotion appends one line to the emotional log.
func (s *FileStore) SaveEmotion(ctx context.Context, entry task.EmotionalState) error {
	err := s.withLock(func() error {
		return appendJSONL(s.path(EmotionsFile), entry)
	})
	if err != nil {
		return fmt.Errorf("append emotion: %w", err)
	}
	return nil
}

// Clear removes both data files.
func (s *FileStore) Clear(ctx context.Context) error {
	return s.withLock(func() error {
		for _, name := range []string{TasksFile, EmotionsFile} {
			if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", name, err)
			}
		}
		return nil
	})
}

// Close is a no-op; the file store holds no open handles between calls.
func (s *FileStore) Close() error {
	return nil
}

// withLock executes fn while holding an exclusive lock on the store's lock file.
func (s *FileStore) withLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	f, err := os.OpenFile(s.path(lockFile), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// readJSONL reads all JSON objects from a JSONL file into a slice.
func readJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return readJSONLFromReader[T](f)
}

func readJSONLFromReader[T any](reader io.Reader) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNum, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return items, nil
}

// writeJSONL writes items to a temp file and renames it over path.
func writeJSONL[T any](path string, items []T) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	encoder := json.NewEncoder(f)
	for i, item := range items {
		if err := encoder.Encode(item); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("encode item %d: %w", i, err)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func appendJSONL[T any](path string, item T) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}

	if err := json.NewEncoder(f).Encode(item); err != nil {
		f.Close()
		return fmt.Errorf("encode item: %w", err)
	}
	return f.Close()
}
