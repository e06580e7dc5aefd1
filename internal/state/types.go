// Package state manages the shared mindful state file.
//
// The state file (~/.local/state/mindful/state.json) carries the parts of
// a board that live between commands but do not belong in the task store:
// a start waiting for confirmation, a check-in waiting for an answer, and
// the completion counter for the every-N check-in policy. Entries are keyed
// by store location so separate data directories never share prompts.
// All access is serialized through file locking to allow safe concurrent
// access from multiple processes.
package state

import (
	"time"

	"github.com/amonks/mindful/task"
)

// State represents the persisted state file.
type State struct {
	Boards map[string]BoardState `json:"boards"`
}

// BoardState stores the interaction state for one store.
type BoardState struct {
	PendingStart   string              `json:"pending_start,omitempty"`
	PendingCheckIn task.CheckInContext `json:"pending_checkin,omitempty"`
	Completions    int                 `json:"completions,omitempty"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// IsZero reports whether the entry holds nothing worth keeping.
func (b BoardState) IsZero() bool {
	return b.PendingStart == "" && b.PendingCheckIn == "" && b.Completions == 0
}
