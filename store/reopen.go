package store

import (
	"context"
	"fmt"

	"github.com/amonks/mindful/task"
)

// ReopeningSource loads tasks by opening the store, reading and closing it
// again on every call. Long-running readers use it for backends that lock
// their directory while open, so other commands can still reach the store
// between reads.
type ReopeningSource struct {
	Config Config
}

// LoadTasks opens the store, loads its tasks and closes it.
func (r ReopeningSource) LoadTasks(ctx context.Context) (tasks []task.Task, err error) {
	s, err := Open(r.Config)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close store: %w", closeErr)
		}
	}()
	return s.LoadTasks(ctx)
}
