package advisor

import (
	"fmt"
	"strings"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/service/analytics"
)

// Summary carries the pre-aggregated figures the advice text is built
// from. The text-generation collaborator only ever sees the rendered
// summary, never raw transactions.
type Summary struct {
	Balance          float64
	TopCategory      string
	TopAmount        float64
	HasTop           bool
	CategorySpending map[string]float64
}

// NewSummary aggregates a transaction set into a Summary.
func NewSummary(transactions []models.Transaction) Summary {
	top, amount, ok := analytics.TopSpendingCategory(transactions)
	return Summary{
		Balance:          analytics.Balance(transactions),
		TopCategory:      top,
		TopAmount:        amount,
		HasTop:           ok,
		CategorySpending: analytics.SpendingByCategory(transactions),
	}
}

// Text renders the summary deterministically: balance line, top-spender
// sentence, per-category breakdown in the fixed category order, and an
// overspend warning when the balance is negative.
func (s Summary) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "The user has a balance of %.2f.\n", s.Balance)

	if s.HasTop {
		fmt.Fprintf(&b, "The user spends the most on %s: %.2f.\n", s.TopCategory, s.TopAmount)
	} else {
		b.WriteString("No spending data available.\n")
	}

	b.WriteString("Spending by category:\n")
	if len(s.CategorySpending) == 0 {
		b.WriteString("No expenses recorded.\n")
	} else {
		for _, key := range models.ExpenseCategories {
			label := models.CategoryLabel(key)
			if amount, ok := s.CategorySpending[label]; ok {
				fmt.Fprintf(&b, "%s: %.2f\n", label, amount)
			}
		}
	}

	if s.Balance < 0 {
		b.WriteString("Warning: the user's expenses exceed their income.\n")
	}

	return b.String()
}
