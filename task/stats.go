package task

import "sort"

// RecentEmotionLimit is how many check-ins Stats keeps.
const RecentEmotionLimit = 10

// QuadrantCount is the backlog load for one quadrant.
type QuadrantCount struct {
	Quadrant Quadrant `json:"quadrant"`
	Count    int      `json:"count"`
	// Percent of the whole backlog, rounded down.
	Percent int `json:"percent"`
}

// Stats summarizes the board and the emotional log.
type Stats struct {
	Backlog        []QuadrantCount  `json:"backlog"`
	BacklogTotal   int              `json:"backlogTotal"`
	InProgress     int              `json:"inProgress"`
	Completed      int              `json:"completed"`
	CheckIns       int              `json:"checkIns"`
	RecentEmotions []EmotionalState `json:"recentEmotions"`
}

// ComputeStats counts tasks per column and backlog load per quadrant.
func ComputeStats(tasks []Task, emotions []EmotionalState) Stats {
	counts := make(map[Quadrant]int, len(quadrantTable))
	var stats Stats
	for _, t := range tasks {
		switch t.Status {
		case StatusBacklog:
			counts[t.Quadrant]++
			stats.BacklogTotal++
		case StatusInProgress:
			stats.InProgress++
		case StatusDone:
			stats.Completed++
		}
	}

	for _, meta := range quadrantTable {
		count := counts[meta.ID]
		percent := 0
		if stats.BacklogTotal > 0 {
			percent = count * 100 / stats.BacklogTotal
		}
		stats.Backlog = append(stats.Backlog, QuadrantCount{Quadrant: meta.ID, Count: count, Percent: percent})
	}

	stats.CheckIns = len(emotions)
	recent := append([]EmotionalState(nil), emotions...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp > recent[j].Timestamp
	})
	if len(recent) > RecentEmotionLimit {
		recent = recent[:RecentEmotionLimit]
	}
	stats.RecentEmotions = recent

	return stats
}
