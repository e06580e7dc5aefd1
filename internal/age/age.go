package age

import "time"

// AgeData computes how long ago then was. A zero time has no age; a time
// in the future has zero age.
func AgeData(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	return clamp(now.Sub(then)), true
}

// LeadTime computes how long a task has been open. Finished tasks measure
// creation to completion; unfinished ones measure creation to now.
func LeadTime(createdAt time.Time, completedAt time.Time, done bool, now time.Time) (time.Duration, bool) {
	if createdAt.IsZero() {
		return 0, false
	}
	if !done {
		return clamp(now.Sub(createdAt)), true
	}
	if completedAt.IsZero() {
		return 0, false
	}
	return clamp(completedAt.Sub(createdAt)), true
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
