package goals

import (
	"github.com/fintrack-app/fintrack-server/cmd/models"
)

// GoalView is a goal annotated with its derived progress fields for
// API responses. Progress is computed on read and never stored.
type GoalView struct {
	models.Goal
	ProgressPercent int  `json:"progress_percent"`
	IsCompleted     bool `json:"is_completed"`
}

func NewGoalView(goal models.Goal) GoalView {
	return GoalView{
		Goal:            goal,
		ProgressPercent: goal.ProgressPercent(),
		IsCompleted:     goal.IsCompleted(),
	}
}

// NewGoalViews maps a slice of goals to views, preserving order.
func NewGoalViews(list []models.Goal) []GoalView {
	views := make([]GoalView, 0, len(list))
	for _, goal := range list {
		views = append(views, NewGoalView(goal))
	}
	return views
}
