package analytics

import (
	"github.com/fintrack-app/fintrack-server/cmd/models"
)

// Pure aggregation over an in-memory transaction set. Nothing here
// touches the database or mutates its input; handlers fetch once and
// aggregate on read.

// Balance sums all amounts. An empty set yields 0.
func Balance(transactions []models.Transaction) float64 {
	var total float64
	for _, t := range transactions {
		total += t.Amount
	}
	return total
}

// spendingByKey groups expense amounts (amount < 0) by category key and
// sums their absolute values. Categories without expenses are absent.
func spendingByKey(transactions []models.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Amount < 0 {
			totals[t.Category] += -t.Amount
		}
	}
	return totals
}

// SpendingByCategory returns expense totals keyed by display label.
// Empty input, or input with no expenses, yields an empty map.
func SpendingByCategory(transactions []models.Transaction) map[string]float64 {
	totals := spendingByKey(transactions)
	labeled := make(map[string]float64, len(totals))
	for key, amount := range totals {
		labeled[models.CategoryLabel(key)] = amount
	}
	return labeled
}

// MonthlySpending returns expense totals keyed by calendar month
// ("YYYY-MM"). Months without expense activity are absent.
func MonthlySpending(transactions []models.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Amount < 0 {
			totals[t.Date.Format("2006-01")] += -t.Amount
		}
	}
	return totals
}

// TopSpendingCategory returns the display label and total of the
// category with the largest summed expense. Ties are broken by the
// declaration order of models.ExpenseCategories, then alphabetically
// for keys outside the declared set, so the result is deterministic
// for any stored data. The third return is false when no expenses
// exist.
func TopSpendingCategory(transactions []models.Transaction) (string, float64, bool) {
	totals := spendingByKey(transactions)
	if len(totals) == 0 {
		return "", 0, false
	}

	var topKey string
	var topAmount float64
	found := false
	for key, amount := range totals {
		if !found || amount > topAmount || (amount == topAmount && categoryBefore(key, topKey)) {
			topKey, topAmount, found = key, amount, true
		}
	}
	return models.CategoryLabel(topKey), topAmount, true
}

// categoryBefore orders category keys for tie-breaking: declared
// expense categories first, in declaration order, then everything
// else alphabetically.
func categoryBefore(a, b string) bool {
	ra, rb := categoryRank(a), categoryRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

func categoryRank(key string) int {
	for i, c := range models.ExpenseCategories {
		if c == key {
			return i
		}
	}
	return len(models.ExpenseCategories)
}
