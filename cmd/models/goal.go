package models

import (
	"gorm.io/gorm"
)

// Goal is a savings goal. CurrentAmount is free to exceed TargetAmount;
// clamping only ever happens on display via ProgressPercent.
type Goal struct {
	gorm.Model
	UserID        uint    `gorm:"column:user_id;not null;index" json:"user_id"`
	Name          string  `gorm:"column:name;size:100;not null" json:"name"`
	TargetAmount  float64 `gorm:"column:target_amount;not null" json:"target_amount"`
	CurrentAmount float64 `gorm:"column:current_amount;default:0" json:"current_amount"`
	Description   string  `gorm:"column:description;type:text" json:"description"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// ProgressPercent returns the goal's completion as an integer in
// [0, 100]. A zero target is defined as 0% regardless of the current
// amount; that is deliberate policy to avoid dividing by zero, not a
// missing case.
func (g *Goal) ProgressPercent() int {
	if g.TargetAmount <= 0 {
		return 0
	}
	ratio := g.CurrentAmount / g.TargetAmount * 100
	if ratio >= 100 {
		return 100
	}
	if ratio <= 0 {
		return 0
	}
	return int(ratio)
}

// IsCompleted reports whether the goal has reached its target.
func (g *Goal) IsCompleted() bool {
	return g.CurrentAmount >= g.TargetAmount
}

// ApplyIncome adds an income amount to the goal without clamping.
func (g *Goal) ApplyIncome(amount float64) {
	g.CurrentAmount += amount
}
