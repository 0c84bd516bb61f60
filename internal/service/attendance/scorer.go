package attendance

import (
	"fmt"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
)

// ScoreChecklist produces exactly one task row per presented item. Items the
// cleaner never answered score as not completed; answers for items outside
// the presented set are ignored. The returned counts are what lands in the
// check-out summary: total always equals the presented count.
func ScoreChecklist(sessionID string, presented []checklist.Item, answers []session.TaskAnswer) (tasks []session.Task, completed int, total int) {
	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		answered[a.ItemID] = a.Completed
	}

	tasks = make([]session.Task, 0, len(presented))
	for _, item := range presented {
		done := answered[item.ID]
		if done {
			completed++
		}
		tasks = append(tasks, session.Task{
			SessionID: sessionID,
			ItemID:    item.ID,
			Label:     item.Label,
			Completed: done,
		})
	}

	return tasks, completed, len(presented)
}

// FormatDuration renders whole minutes as "2h 5m" or "45m".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
