package attendance

import (
	"testing"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
)

func TestScoreChecklistOneRowPerPresentedItem(t *testing.T) {
	presented := []checklist.Item{
		{ID: "item-1", Label: "Vacuum floors"},
		{ID: "item-2", Label: "Empty bins"},
		{ID: "item-3", Label: "Clean windows"},
	}
	answers := []session.TaskAnswer{
		{ItemID: "item-1", Completed: true},
		{ItemID: "item-3", Completed: false},
	}

	tasks, completed, total := ScoreChecklist("sess-1", presented, answers)

	assert.Len(t, tasks, 3)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 3, total)

	assert.True(t, tasks[0].Completed)
	assert.False(t, tasks[1].Completed, "unanswered item scores as not completed")
	assert.False(t, tasks[2].Completed)

	for _, task := range tasks {
		assert.Equal(t, "sess-1", task.SessionID)
	}
}

func TestScoreChecklistIgnoresUnknownAnswers(t *testing.T) {
	presented := []checklist.Item{
		{ID: "item-1", Label: "Vacuum floors"},
	}
	answers := []session.TaskAnswer{
		{ItemID: "item-1", Completed: true},
		{ItemID: "item-rogue", Completed: true},
	}

	tasks, completed, total := ScoreChecklist("sess-1", presented, answers)

	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, total)
}

func TestScoreChecklistEmptyPresentedSet(t *testing.T) {
	tasks, completed, total := ScoreChecklist("sess-1", nil, []session.TaskAnswer{
		{ItemID: "item-1", Completed: true},
	})

	assert.Empty(t, tasks)
	assert.Zero(t, completed)
	assert.Zero(t, total)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{95, "1h 35m"},
		{125, "2h 5m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes))
	}
}
