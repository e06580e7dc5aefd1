package main

import "fmt"

func backlogEmptyMessage(total int) string {
	if total == 0 {
		return "No tasks yet. Add one with `mindful add`."
	}
	return "Backlog is clear."
}

func backlogHiddenMessage(hidden int) string {
	if hidden <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d more (use --all to show)", hidden)
}

func doneHiddenMessage(hidden int) string {
	if hidden <= 0 {
		return ""
	}
	if hidden == 1 {
		return "+1 older task hidden"
	}
	return fmt.Sprintf("+%d older tasks hidden", hidden)
}
