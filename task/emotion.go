package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/internal/validation"
)

// Feeling is a self-reported emotional state.
type Feeling string

const (
	FeelingOverwhelmed Feeling = "OVERWHELMED"
	FeelingAnxious     Feeling = "ANXIOUS"
	FeelingNeutral     Feeling = "NEUTRAL"
	FeelingCalm        Feeling = "CALM"
	FeelingControl     Feeling = "CONTROL"
)

// ValidFeelings returns all feelings, from most to least distressed.
func ValidFeelings() []Feeling {
	return []Feeling{FeelingOverwhelmed, FeelingAnxious, FeelingNeutral, FeelingCalm, FeelingControl}
}

// IsValid returns true if the feeling is a known valid value.
func (f Feeling) IsValid() bool {
	for _, valid := range ValidFeelings() {
		if f == valid {
			return true
		}
	}
	return false
}

// Label returns the display name of the feeling.
func (f Feeling) Label() string {
	switch f {
	case FeelingOverwhelmed:
		return "Overwhelmed"
	case FeelingAnxious:
		return "Anxious"
	case FeelingNeutral:
		return "Neutral"
	case FeelingCalm:
		return "Calm"
	case FeelingControl:
		return "In Control"
	default:
		return string(f)
	}
}

// Emoji returns the face shown next to the feeling.
func (f Feeling) Emoji() string {
	switch f {
	case FeelingOverwhelmed:
		return "😫"
	case FeelingAnxious:
		return "😰"
	case FeelingNeutral:
		return "😐"
	case FeelingCalm:
		return "😌"
	case FeelingControl:
		return "😎"
	default:
		return "?"
	}
}

// ParseFeeling accepts canonical names, labels such as "in control",
// and positions 1 through 5 in ValidFeelings order.
func ParseFeeling(value string) (Feeling, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	if n, err := strconv.Atoi(normalized); err == nil {
		feelings := ValidFeelings()
		if n >= 1 && n <= len(feelings) {
			return feelings[n-1], nil
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidFeeling, value)
	}
	for _, feeling := range ValidFeelings() {
		if normalized == strings.ToLower(string(feeling)) || normalized == strings.ToLower(feeling.Label()) {
			return feeling, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidFeeling, Feeling(value), ValidFeelings())
}

// CheckInContext records when a check-in was taken.
type CheckInContext string

const (
	// ContextStartup is a check-in taken when opening the board.
	ContextStartup CheckInContext = "STARTUP"
	// ContextCompletion is a check-in taken after finishing a task.
	ContextCompletion CheckInContext = "COMPLETION"
)

// IsValid returns true if the context is a known valid value.
func (c CheckInContext) IsValid() bool {
	return c == ContextStartup || c == ContextCompletion
}

// ParseCheckInContext parses "startup" or "completion" in any case.
func ParseCheckInContext(value string) (CheckInContext, error) {
	ctx := CheckInContext(strings.ToUpper(strings.TrimSpace(value)))
	if !ctx.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidContext, CheckInContext(value), []CheckInContext{ContextStartup, ContextCompletion})
	}
	return ctx, nil
}

// Question returns the prompt shown for a check-in in this context.
func (c CheckInContext) Question() string {
	if c == ContextCompletion {
		return "How do you feel after finishing this task?"
	}
	return "How are you feeling looking at your tasks right now?"
}

// EmotionalState is one entry in the append-only emotional log.
type EmotionalState struct {
	Timestamp int64          `json:"timestamp"`
	Feeling   Feeling        `json:"feeling"`
	Context   CheckInContext `json:"context"`
}

// NewEmotion validates and timestamps a check-in.
func NewEmotion(feeling Feeling, context CheckInContext, now time.Time) (EmotionalState, error) {
	if !feeling.IsValid() {
		return EmotionalState{}, fmt.Errorf("%w: %q", ErrInvalidFeeling, feeling)
	}
	if !context.IsValid() {
		return EmotionalState{}, fmt.Errorf("%w: %q", ErrInvalidContext, context)
	}
	return EmotionalState{Timestamp: Millis(now), Feeling: feeling, Context: context}, nil
}

// Time returns the check-in time.
func (e EmotionalState) Time() time.Time {
	return FromMillis(e.Timestamp)
}
