package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalProgressPercent(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want int
	}{
		{
			name: "quarter of the way",
			goal: Goal{TargetAmount: 1000, CurrentAmount: 250},
			want: 25,
		},
		{
			name: "current exceeds target clamps to 100",
			goal: Goal{TargetAmount: 1000, CurrentAmount: 1050},
			want: 100,
		},
		{
			name: "exactly at target",
			goal: Goal{TargetAmount: 1000, CurrentAmount: 1000},
			want: 100,
		},
		{
			name: "zero target is defined as zero progress",
			goal: Goal{TargetAmount: 0, CurrentAmount: 500},
			want: 0,
		},
		{
			name: "nothing saved yet",
			goal: Goal{TargetAmount: 100, CurrentAmount: 0},
			want: 0,
		},
		{
			name: "fraction floors rather than rounds",
			goal: Goal{TargetAmount: 3, CurrentAmount: 1},
			want: 33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.goal.ProgressPercent()
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestGoalIsCompleted(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want bool
	}{
		{"below target", Goal{TargetAmount: 1000, CurrentAmount: 250}, false},
		{"above target", Goal{TargetAmount: 1000, CurrentAmount: 1050}, true},
		{"at target", Goal{TargetAmount: 1000, CurrentAmount: 1000}, true},
		{"zero target is always completed", Goal{TargetAmount: 0, CurrentAmount: 500}, true},
		{"zero target zero current", Goal{TargetAmount: 0, CurrentAmount: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.goal.IsCompleted())
		})
	}
}

func TestGoalApplyIncome(t *testing.T) {
	goal := Goal{TargetAmount: 1000, CurrentAmount: 250}

	assert.Equal(t, 25, goal.ProgressPercent())
	assert.False(t, goal.IsCompleted())

	goal.ApplyIncome(800)

	// No clamping on write: the stored amount may exceed the target.
	assert.Equal(t, 1050.0, goal.CurrentAmount)
	assert.Equal(t, 100, goal.ProgressPercent())
	assert.True(t, goal.IsCompleted())
}

func TestCategoryMapping(t *testing.T) {
	assert.True(t, IsExpenseCategory("food"))
	assert.True(t, IsExpenseCategory("other"))
	assert.False(t, IsExpenseCategory("income"))
	assert.False(t, IsExpenseCategory("groceries"))

	assert.Equal(t, "Food", CategoryLabel("food"))
	assert.Equal(t, "Income", CategoryLabel(CategoryIncome))
	assert.Equal(t, "mystery", CategoryLabel("mystery"))

	// Every expense category has a label.
	for _, key := range ExpenseCategories {
		_, ok := CategoryLabels[key]
		assert.True(t, ok, "missing label for %s", key)
	}
}
