package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidReminder indicates a reminder time could not be parsed.
var ErrInvalidReminder = errors.New("invalid reminder")

var reminderLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseReminder reads a reminder as an absolute time (RFC 3339, or
// "2006-01-02 15:04" in the local zone) or as an offset from now such as
// "+30m". An empty value means no reminder.
func ParseReminder(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if offset, ok := strings.CutPrefix(value, "+"); ok {
		d, err := time.ParseDuration(offset)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q is not a positive duration", ErrInvalidReminder, value)
		}
		at := now.Add(d)
		return &at, nil
	}

	for _, layout := range reminderLayouts {
		if at, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return &at, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (use RFC 3339, \"2006-01-02 15:04\", or +duration)", ErrInvalidReminder, value)
}
