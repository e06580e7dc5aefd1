package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// Store manages the state file with locking.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a new state store using the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// statePath returns the path to the state file.
func (s *Store) statePath() string {
	return filepath.Join(s.dir, "state.json")
}

// lockPath returns the path to the lock file.
func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "state.lock")
}

// Load reads the state from disk. Returns an empty state if the file doesn't exist.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.statePath())
	if os.IsNotExist(err) {
		return &State{Boards: make(map[string]BoardState)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}

	if st.Boards == nil {
		st.Boards = make(map[string]BoardState)
	}

	return &st, nil
}

// Save writes the state to disk.
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if existing, err := os.ReadFile(s.statePath()); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read state file: %w", err)
	}

	// Write atomically via temp file
	tmpFile, err := os.CreateTemp(s.dir, filepath.Base(s.statePath())+".tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := os.Rename(name, s.statePath()); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename state file: %w", err)
	}

	return nil
}

// Update atomically reads, modifies, and writes the state with file locking.
func (s *Store) Update(fn func(st *State) error) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	st, err := s.Load()
	if err != nil {
		return err
	}

	if err := fn(st); err != nil {
		return err
	}

	return s.Save(st)
}

// Board returns the state for the board identified by key.
func (s *Store) Board(key string) (BoardState, error) {
	st, err := s.Load()
	if err != nil {
		return BoardState{}, err
	}
	return st.Boards[key], nil
}

// MergeBoard applies the fields of current that differ from loaded onto the
// entry for key as it is on disk now. Fields a caller left untouched keep
// whatever another process wrote since loaded was read.
func (s *Store) MergeBoard(key string, loaded, current BoardState) error {
	return s.Update(func(st *State) error {
		board := st.Boards[key]
		changed := false
		if current.PendingStart != loaded.PendingStart {
			board.PendingStart = current.PendingStart
			changed = true
		}
		if current.PendingCheckIn != loaded.PendingCheckIn {
			board.PendingCheckIn = current.PendingCheckIn
			changed = true
		}
		if current.Completions != loaded.Completions {
			board.Completions = current.Completions
			changed = true
		}
		if !changed {
			return nil
		}
		if board.IsZero() {
			delete(st.Boards, key)
			return nil
		}
		board.UpdatedAt = s.now()
		st.Boards[key] = board
		return nil
	})
}

// BoardKey identifies a board by backend and absolute data directory.
func BoardKey(backend, dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if backend == "" {
		backend = "file"
	}
	return strings.ToLower(backend) + ":" + filepath.Clean(dir)
}
