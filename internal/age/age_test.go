package age

import (
	"testing"
	"time"
)

func TestLeadTime(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * time.Minute)
	completed := created.Add(3 * time.Minute)
	futureCreated := now.Add(4 * time.Minute)

	cases := []struct {
		name        string
		createdAt   time.Time
		completedAt time.Time
		done        bool
		want        time.Duration
		ok          bool
	}{
		{
			name:      "open uses now",
			createdAt: created,
			want:      10 * time.Minute,
			ok:        true,
		},
		{
			name:      "open clamps future",
			createdAt: futureCreated,
			want:      0,
			ok:        true,
		},
		{
			name:        "done uses completion",
			createdAt:   created,
			completedAt: completed,
			done:        true,
			want:        3 * time.Minute,
			ok:          true,
		},
		{
			name:        "done clamps negative",
			createdAt:   now,
			completedAt: created,
			done:        true,
			want:        0,
			ok:          true,
		},
		{
			name:      "done missing completion",
			createdAt: created,
			done:      true,
			want:      0,
			ok:        false,
		},
		{
			name: "missing creation",
			want: 0,
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := LeadTime(tc.createdAt, tc.completedAt, tc.done, now)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestAgeData(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	started := now.Add(-4 * time.Minute)
	future := now.Add(2 * time.Minute)

	cases := []struct {
		name string
		then time.Time
		want time.Duration
		ok   bool
	}{
		{
			name: "uses given time",
			then: started,
			want: 4 * time.Minute,
			ok:   true,
		},
		{
			name: "clamps future time",
			then: future,
			want: 0,
			ok:   true,
		},
		{
			name: "missing time",
			then: time.Time{},
			want: 0,
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AgeData(tc.then, now)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}
