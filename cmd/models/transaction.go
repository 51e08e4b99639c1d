package models

import (
	"time"

	"gorm.io/gorm"
)

// CategoryIncome is the category stored on every income transaction.
// Expenses carry one of ExpenseCategories instead.
const CategoryIncome = "income"

// ExpenseCategories is the closed set of expense category keys. The
// declaration order is load-bearing: aggregation uses it as the stable
// ordering when breaking ties between equally large categories.
var ExpenseCategories = []string{
	"food",
	"transport",
	"entertainment",
	"utilities",
	"other",
}

// CategoryLabels maps category keys to the labels shown on dashboards
// and in advice text. Defined once at startup, never mutated.
var CategoryLabels = map[string]string{
	CategoryIncome:  "Income",
	"food":          "Food",
	"transport":     "Transport",
	"entertainment": "Entertainment",
	"utilities":     "Utilities",
	"other":         "Other",
}

// IsExpenseCategory reports whether key is a valid expense category.
func IsExpenseCategory(key string) bool {
	for _, c := range ExpenseCategories {
		if c == key {
			return true
		}
	}
	return false
}

// CategoryLabel returns the display label for a category key, falling
// back to the key itself for anything outside the known set.
func CategoryLabel(key string) string {
	if label, ok := CategoryLabels[key]; ok {
		return label
	}
	return key
}

// Transaction is a single ledger entry. Income is stored with a
// positive amount and category "income"; expenses are stored with a
// negative amount and one of the expense categories.
type Transaction struct {
	gorm.Model
	UserID          uint      `gorm:"column:user_id;not null;uniqueIndex:idx_tx_user_ref" json:"user_id"`
	Amount          float64   `gorm:"column:amount;not null" json:"amount"`
	Category        string    `gorm:"column:category;size:50;not null" json:"category"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	Date            time.Time `gorm:"column:date;not null" json:"date"`
	ClientReference string    `gorm:"column:client_reference;size:36;uniqueIndex:idx_tx_user_ref" json:"client_reference"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
