package task

import "testing"

func TestDeriveViewsOrdersBacklogByRankThenOrder(t *testing.T) {
	tasks := []Task{
		backlogTask("elim", QuadrantEliminate, 1, 1),
		backlogTask("sched-2", QuadrantSchedule, 2, 2),
		backlogTask("first", QuadrantDoFirst, 9, 3),
		backlogTask("sched-1", QuadrantSchedule, 1, 4),
		backlogTask("deleg", QuadrantDelegate, 0, 5),
	}

	views := DeriveViews(tasks)

	want := []string{"first", "sched-1", "sched-2", "deleg", "elim"}
	if got := taskIDs(views.Backlog); !equalIDs(got, want) {
		t.Fatalf("expected backlog %v, got %v", want, got)
	}

	top, ok := views.Top()
	if !ok || top.ID != "first" {
		t.Fatalf("expected top task first, got %q (ok=%v)", top.ID, ok)
	}
}

func TestDeriveViewsIsStableForTies(t *testing.T) {
	tasks := []Task{
		backlogTask("b", QuadrantSchedule, 1, 2),
		backlogTask("a", QuadrantSchedule, 1, 1),
	}

	views := DeriveViews(tasks)
	if got := taskIDs(views.Backlog); !equalIDs(got, []string{"b", "a"}) {
		t.Fatalf("expected ties to keep input order, got %v", got)
	}
}

func TestDeriveViewsSortsDoneNewestFirst(t *testing.T) {
	tasks := []Task{
		{ID: "old", Status: StatusDone, CompletedAt: Int64Ptr(100)},
		{ID: "new", Status: StatusDone, CompletedAt: Int64Ptr(300)},
		{ID: "mid", Status: StatusDone, CompletedAt: Int64Ptr(200)},
		{ID: "focus", Status: StatusInProgress, CreatedAt: 5},
	}

	views := DeriveViews(tasks)
	if got := taskIDs(views.Done); !equalIDs(got, []string{"new", "mid", "old"}) {
		t.Fatalf("expected done newest first, got %v", got)
	}
	if got := taskIDs(views.InProgress); !equalIDs(got, []string{"focus"}) {
		t.Fatalf("expected in progress [focus], got %v", got)
	}
}

func TestDeriveViewsDoesNotAliasInput(t *testing.T) {
	tasks := []Task{backlogTask("a", QuadrantDoFirst, 1, 1)}

	views := DeriveViews(tasks)
	*views.Backlog[0].Order = 42

	if tasks[0].OrderValue() != 1 {
		t.Fatalf("expected input order to stay 1, got %d", tasks[0].OrderValue())
	}
}

func TestLimit(t *testing.T) {
	tasks := make([]Task, 7)
	for i := range tasks {
		tasks[i] = backlogTask(string(rune('a'+i)), QuadrantDoFirst, i, int64(i))
	}

	visible, hidden := Limit(tasks, DefaultVisibleLimit)
	if len(visible) != 5 || hidden != 2 {
		t.Fatalf("expected 5 visible and 2 hidden, got %d and %d", len(visible), hidden)
	}

	visible, hidden = Limit(tasks, 0)
	if len(visible) != 7 || hidden != 0 {
		t.Fatalf("expected no limit, got %d visible and %d hidden", len(visible), hidden)
	}
}

func TestQuadrantRegistry(t *testing.T) {
	metas := Quadrants()
	if len(metas) != 4 {
		t.Fatalf("expected 4 quadrants, got %d", len(metas))
	}
	for i, meta := range metas {
		if meta.Rank != i+1 {
			t.Fatalf("expected %s rank %d, got %d", meta.ID, i+1, meta.Rank)
		}
	}
	if QuadrantDelegate.Label() != "Delegate" {
		t.Fatalf("expected Delegate label, got %q", QuadrantDelegate.Label())
	}
	if Quadrant("BOGUS").Rank() != 5 {
		t.Fatalf("expected unknown quadrant rank 5, got %d", Quadrant("BOGUS").Rank())
	}
}

func TestParseQuadrant(t *testing.T) {
	cases := []struct {
		input string
		want  Quadrant
	}{
		{input: "DO_FIRST", want: QuadrantDoFirst},
		{input: "do-first", want: QuadrantDoFirst},
		{input: "Do First", want: QuadrantDoFirst},
		{input: "first", want: QuadrantDoFirst},
		{input: "2", want: QuadrantSchedule},
		{input: "delegate", want: QuadrantDelegate},
		{input: " ELIMINATE ", want: QuadrantEliminate},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseQuadrant(tc.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}

	for _, bad := range []string{"", "5", "urgent"} {
		if _, err := ParseQuadrant(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
