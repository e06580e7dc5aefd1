package task

import "sort"

// Views partitions tasks into the three board columns.
type Views struct {
	// Backlog is ordered by quadrant rank, then order. Element 0 is the
	// highest-priority task.
	Backlog []Task
	// InProgress is ordered by creation time, oldest first.
	InProgress []Task
	// Done is ordered by completion time, newest first.
	Done []Task
}

// DeriveViews computes the board columns. Sorting is stable, so tasks
// with equal keys keep their relative input order.
func DeriveViews(tasks []Task) Views {
	var views Views
	for _, t := range tasks {
		switch t.Status {
		case StatusBacklog:
			views.Backlog = append(views.Backlog, t.clone())
		case StatusInProgress:
			views.InProgress = append(views.InProgress, t.clone())
		case StatusDone:
			views.Done = append(views.Done, t.clone())
		}
	}

	sort.SliceStable(views.Backlog, func(i, j int) bool {
		a, b := views.Backlog[i], views.Backlog[j]
		if a.Quadrant.Rank() != b.Quadrant.Rank() {
			return a.Quadrant.Rank() < b.Quadrant.Rank()
		}
		return a.OrderValue() < b.OrderValue()
	})
	sort.SliceStable(views.InProgress, func(i, j int) bool {
		return views.InProgress[i].CreatedAt < views.InProgress[j].CreatedAt
	})
	sort.SliceStable(views.Done, func(i, j int) bool {
		return views.Done[i].CompletedAtValue() > views.Done[j].CompletedAtValue()
	})

	return views
}

// Top returns the highest-priority backlog task.
func (v Views) Top() (Task, bool) {
	if len(v.Backlog) == 0 {
		return Task{}, false
	}
	return v.Backlog[0], true
}

// Focus returns the task currently in progress.
func (v Views) Focus() (Task, bool) {
	if len(v.InProgress) == 0 {
		return Task{}, false
	}
	return v.InProgress[0], true
}

// Limit returns the first limit tasks and how many were left out.
// A limit of zero or less returns everything.
func Limit(tasks []Task, limit int) ([]Task, int) {
	if limit <= 0 || len(tasks) <= limit {
		return tasks, 0
	}
	return tasks[:limit], len(tasks) - limit
}

// BacklogByQuadrant groups the backlog by quadrant, preserving order.
func (v Views) BacklogByQuadrant() map[Quadrant][]Task {
	grouped := make(map[Quadrant][]Task, len(quadrantTable))
	for _, t := range v.Backlog {
		grouped[t.Quadrant] = append(grouped[t.Quadrant], t)
	}
	return grouped
}
