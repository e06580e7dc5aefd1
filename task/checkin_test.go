package task

import "testing"

func TestRandomPolicyUsesTopOfRange(t *testing.T) {
	tests := []struct {
		draw float64
		want bool
	}{
		{draw: 0.0, want: false},
		{draw: 0.6, want: false},
		{draw: 0.61, want: true},
		{draw: 0.99, want: true},
	}

	for _, tt := range tests {
		policy := RandomPolicy{Probability: DefaultCheckInProbability, Float: func() float64 { return tt.draw }}
		if got := policy.ShouldPrompt(); got != tt.want {
			t.Fatalf("draw %v: expected %v, got %v", tt.draw, tt.want, got)
		}
	}
}

func TestRandomPolicyZeroNeverPrompts(t *testing.T) {
	policy := RandomPolicy{Probability: 0, Float: func() float64 { return 0.999 }}
	if policy.ShouldPrompt() {
		t.Fatal("expected zero probability to never prompt")
	}
}

func TestEveryNthPolicyCountsCompletions(t *testing.T) {
	policy := NewEveryNthPolicy(3, 0)

	var got []bool
	for range 6 {
		got = append(got, policy.ShouldPrompt())
	}
	want := []bool{false, false, true, false, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected prompts %v, got %v", want, got)
		}
	}
	if policy.Count() != 0 {
		t.Fatalf("expected count to reset, got %d", policy.Count())
	}
}

func TestEveryNthPolicyResumes(t *testing.T) {
	policy := NewEveryNthPolicy(2, 1)
	if !policy.ShouldPrompt() {
		t.Fatal("expected resumed policy to prompt on the next completion")
	}
}

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		wantErr bool
		check   func(CheckInPolicy) bool
	}{
		{name: "default", policy: "", check: func(p CheckInPolicy) bool { _, ok := p.(RandomPolicy); return ok }},
		{name: "every", policy: "every", check: func(p CheckInPolicy) bool { _, ok := p.(*EveryNthPolicy); return ok }},
		{name: "always", policy: "always", check: func(p CheckInPolicy) bool { return p.ShouldPrompt() }},
		{name: "never", policy: "never", check: func(p CheckInPolicy) bool { return !p.ShouldPrompt() }},
		{name: "unknown", policy: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := PolicyByName(tt.policy, DefaultCheckInProbability, 3)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("policy %q: %v", tt.policy, err)
			}
			if !tt.check(policy) {
				t.Fatalf("unexpected policy %T for %q", policy, tt.policy)
			}
		})
	}
}

func TestPolicyByNameRejectsBadProbability(t *testing.T) {
	if _, err := PolicyByName("random", 1.5, 0); err == nil {
		t.Fatal("expected probability above 1 to fail")
	}
	if _, err := PolicyByName("every", 0, 0); err == nil {
		t.Fatal("expected zero interval to fail")
	}
}
