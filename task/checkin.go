package task

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// CheckInPolicy decides whether completing a task should ask the user how
// they feel.
type CheckInPolicy interface {
	ShouldPrompt() bool
}

// DefaultCheckInProbability is the chance a completion prompts a check-in.
const DefaultCheckInProbability = 0.4

// RandomPolicy prompts with a fixed probability.
type RandomPolicy struct {
	Probability float64
	// Float returns a value in [0, 1). Defaults to math/rand/v2.
	Float func() float64
}

// ShouldPrompt draws a value and prompts when it lands in the top
// Probability fraction of the range.
func (p RandomPolicy) ShouldPrompt() bool {
	draw := rand.Float64
	if p.Float != nil {
		draw = p.Float
	}
	return draw() > 1-p.Probability
}

// EveryNthPolicy prompts on every Nth completion.
type EveryNthPolicy struct {
	N int

	mu    sync.Mutex
	count int
}

// NewEveryNthPolicy resumes counting from count completions.
func NewEveryNthPolicy(n, count int) *EveryNthPolicy {
	return &EveryNthPolicy{N: n, count: count}
}

// Count returns the completions seen since the last prompt.
func (p *EveryNthPolicy) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// ShouldPrompt counts the completion and prompts when it reaches N.
func (p *EveryNthPolicy) ShouldPrompt() bool {
	if p.N <= 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	if p.count >= p.N {
		p.count = 0
		return true
	}
	return false
}

// AlwaysPolicy prompts after every completion.
type AlwaysPolicy struct{}

// ShouldPrompt always returns true.
func (AlwaysPolicy) ShouldPrompt() bool { return true }

// NeverPolicy never prompts.
type NeverPolicy struct{}

// ShouldPrompt always returns false.
func (NeverPolicy) ShouldPrompt() bool { return false }

// PolicyByName builds a policy from its configuration name: random,
// every, always or never. An empty name selects random.
func PolicyByName(name string, probability float64, every int) (CheckInPolicy, error) {
	switch name {
	case "", "random":
		if probability < 0 || probability > 1 {
			return nil, fmt.Errorf("check-in probability must be between 0 and 1, got %v", probability)
		}
		return RandomPolicy{Probability: probability}, nil
	case "every":
		if every <= 0 {
			return nil, fmt.Errorf("check-in interval must be positive, got %d", every)
		}
		return &EveryNthPolicy{N: every}, nil
	case "always":
		return AlwaysPolicy{}, nil
	case "never":
		return NeverPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown check-in policy %q: must be random, every, always, or never", name)
	}
}
