package task

import (
	"errors"
	"testing"
)

func TestParseFeeling(t *testing.T) {
	cases := map[string]Feeling{
		"calm":        FeelingCalm,
		"CONTROL":     FeelingControl,
		"in control":  FeelingControl,
		"1":           FeelingOverwhelmed,
		" Anxious ":   FeelingAnxious,
		"neutral":     FeelingNeutral,
		"overwhelmed": FeelingOverwhelmed,
	}
	for input, want := range cases {
		got, err := ParseFeeling(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("expected %q to parse as %s, got %s", input, want, got)
		}
	}

	if _, err := ParseFeeling("happy"); !errors.Is(err, ErrInvalidFeeling) {
		t.Fatalf("expected ErrInvalidFeeling, got %v", err)
	}
	if _, err := ParseFeeling("6"); !errors.Is(err, ErrInvalidFeeling) {
		t.Fatalf("expected ErrInvalidFeeling for 6, got %v", err)
	}
}

func TestNewEmotionValidates(t *testing.T) {
	entry, err := NewEmotion(FeelingCalm, ContextCompletion, testNow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Timestamp != testNow.UnixMilli() {
		t.Fatalf("expected timestamp %d, got %d", testNow.UnixMilli(), entry.Timestamp)
	}

	if _, err := NewEmotion("MEH", ContextStartup, testNow); !errors.Is(err, ErrInvalidFeeling) {
		t.Fatalf("expected ErrInvalidFeeling, got %v", err)
	}
	if _, err := NewEmotion(FeelingCalm, "LUNCH", testNow); !errors.Is(err, ErrInvalidContext) {
		t.Fatalf("expected ErrInvalidContext, got %v", err)
	}
}

func TestCheckInPolicies(t *testing.T) {
	random := RandomPolicy{Probability: 0.4, Float: func() float64 { return 0.61 }}
	if !random.ShouldPrompt() {
		t.Fatalf("expected draw 0.61 to prompt")
	}
	random.Float = func() float64 { return 0.59 }
	if random.ShouldPrompt() {
		t.Fatalf("expected draw 0.59 not to prompt")
	}

	every := &EveryNthPolicy{N: 3}
	var got []bool
	for i := 0; i < 6; i++ {
		got = append(got, every.ShouldPrompt())
	}
	want := []bool{false, false, true, false, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected every-3rd prompts %v, got %v", want, got)
		}
	}

	resumed := NewEveryNthPolicy(3, 2)
	if !resumed.ShouldPrompt() {
		t.Fatalf("expected resumed policy to prompt on its third completion")
	}
	if resumed.Count() != 0 {
		t.Fatalf("expected count reset after prompt, got %d", resumed.Count())
	}

	if _, err := PolicyByName("sometimes", 0.4, 0); err == nil {
		t.Fatalf("expected unknown policy error")
	}
	policy, err := PolicyByName("always", 0, 0)
	if err != nil || !policy.ShouldPrompt() {
		t.Fatalf("expected always policy, got %v (err=%v)", policy, err)
	}
}

func TestComputeStats(t *testing.T) {
	tasks := []Task{
		backlogTask("a", QuadrantDoFirst, 1, 1),
		backlogTask("b", QuadrantDoFirst, 2, 2),
		backlogTask("c", QuadrantSchedule, 1, 3),
		backlogTask("d", QuadrantEliminate, 1, 4),
		{ID: "e", Status: StatusDone, CompletedAt: Int64Ptr(5)},
		{ID: "f", Status: StatusInProgress},
	}
	var emotions []EmotionalState
	for i := 0; i < 12; i++ {
		emotions = append(emotions, EmotionalState{Timestamp: int64(i), Feeling: FeelingCalm, Context: ContextStartup})
	}

	stats := ComputeStats(tasks, emotions)
	if stats.BacklogTotal != 4 || stats.Completed != 1 || stats.InProgress != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.Backlog[0].Count != 2 || stats.Backlog[0].Percent != 50 {
		t.Fatalf("expected DO_FIRST 2 (50%%), got %+v", stats.Backlog[0])
	}
	if stats.Backlog[2].Count != 0 {
		t.Fatalf("expected DELEGATE 0, got %+v", stats.Backlog[2])
	}
	if stats.CheckIns != 12 || len(stats.RecentEmotions) != RecentEmotionLimit {
		t.Fatalf("expected 12 check-ins and %d recent, got %d and %d", RecentEmotionLimit, stats.CheckIns, len(stats.RecentEmotions))
	}
	if stats.RecentEmotions[0].Timestamp != 11 {
		t.Fatalf("expected newest emotion first, got %d", stats.RecentEmotions[0].Timestamp)
	}
}

func TestIDIndexResolvesPrefixes(t *testing.T) {
	tasks := []Task{
		{ID: "abc-111"},
		{ID: "abd-222"},
		{ID: "xyz-333"},
	}
	index := NewIDIndex(tasks)

	id, err := index.Resolve("x")
	if err != nil || id != "xyz-333" {
		t.Fatalf("expected xyz-333, got %q (err=%v)", id, err)
	}
	if _, err := index.Resolve("ab"); !errors.Is(err, ErrAmbiguousTaskIDPrefix) {
		t.Fatalf("expected ErrAmbiguousTaskIDPrefix, got %v", err)
	}
	if _, err := index.Resolve("q"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if got := index.PrefixLengths()["abc-111"]; got != 3 {
		t.Fatalf("expected prefix length 3, got %d", got)
	}
}
