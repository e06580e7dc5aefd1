package task

import "sort"

// Reorder swaps the task's order with its neighbour in the same quadrant
// and status group. Moving past either end, or naming an unknown task,
// is a no-op that reports false. Applying the opposite direction
// afterwards restores the original orders.
func Reorder(tasks []Task, id string, dir Direction) ([]Task, bool) {
	idx := indexOf(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	target := tasks[idx]

	group := make([]int, 0)
	for i, t := range tasks {
		if t.Quadrant == target.Quadrant && t.Status == target.Status {
			group = append(group, i)
		}
	}
	sort.SliceStable(group, func(a, b int) bool {
		return tasks[group[a]].OrderValue() < tasks[group[b]].OrderValue()
	})

	pos := -1
	for i, taskIdx := range group {
		if taskIdx == idx {
			pos = i
			break
		}
	}

	neighbour := pos - 1
	if dir == DirectionDown {
		neighbour = pos + 1
	}
	if neighbour < 0 || neighbour >= len(group) {
		return tasks, false
	}

	out := Clone(tasks)
	a, b := group[pos], group[neighbour]
	orderA, orderB := out[a].OrderValue(), out[b].OrderValue()
	out[a].Order = IntPtr(orderB)
	out[b].Order = IntPtr(orderA)
	return out, true
}

// DragSwap exchanges both order and quadrant between two tasks, so each
// lands exactly where the other was. Unknown IDs or identical IDs are a
// no-op that reports false.
//
// Unlike Reorder this moves tasks across quadrants.
func DragSwap(tasks []Task, sourceID, targetID string) ([]Task, bool) {
	if sourceID == targetID {
		return tasks, false
	}
	src := indexOf(tasks, sourceID)
	dst := indexOf(tasks, targetID)
	if src < 0 || dst < 0 {
		return tasks, false
	}

	out := Clone(tasks)
	out[src].Order, out[dst].Order = out[dst].Order, out[src].Order
	out[src].Quadrant, out[dst].Quadrant = out[dst].Quadrant, out[src].Quadrant
	return out, true
}

// AssignMissingOrder gives every task without an order the index it holds
// when all tasks are sorted by creation time. Existing orders are kept.
// It reports whether any task changed so callers can persist at once.
func AssignMissingOrder(tasks []Task) ([]Task, bool) {
	missing := false
	for _, t := range tasks {
		if t.Order == nil {
			missing = true
			break
		}
	}
	if !missing {
		return tasks, false
	}

	out := Clone(tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	for i := range out {
		if out[i].Order == nil {
			out[i].Order = IntPtr(i)
		}
	}
	return out, true
}
