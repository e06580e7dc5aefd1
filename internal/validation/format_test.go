package validation

import (
	"errors"
	"testing"
)

type mood string

const (
	calm    mood = "CALM"
	anxious mood = "ANXIOUS"
)

func TestFormatValidValues(t *testing.T) {
	got := FormatValidValues([]mood{calm, anxious})
	want := "CALM, ANXIOUS"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatValidValuesEmpty(t *testing.T) {
	if got := FormatValidValues[mood](nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFormatInvalidValueError(t *testing.T) {
	base := errors.New("invalid mood")
	err := FormatInvalidValueError(base, mood("grumpy"), []mood{calm, anxious})
	if !errors.Is(err, base) {
		t.Fatalf("expected error to wrap %v", base)
	}

	want := "invalid mood: \"grumpy\" (valid: CALM, ANXIOUS)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
