package board

// FocusOccupiedMessage is shown when a start is blocked by the task in progress.
const FocusOccupiedMessage = "Mindful Focus: Please complete your current task before starting a new one."

// FrictionTitle heads the confirmation shown before starting out of order.
const FrictionTitle = "Mindful Pause"

// FrictionMessage explains why a start needs confirmation.
const FrictionMessage = "This is not your highest priority task based on the Eisenhower Matrix. " +
	"Your top task is waiting. Skipping priorities can sometimes lead to anxiety about unfinished urgent work."

// FrictionQuestion asks the user to confirm an out-of-order start.
const FrictionQuestion = "Are you sure you want to start this one instead?"

// ReminderTitle heads reminder notifications.
const ReminderTitle = "MindfulTask Reminder"

// ReminderBody returns the reminder text for a task.
func ReminderBody(content string) string {
	return "Time to focus on: " + content
}
