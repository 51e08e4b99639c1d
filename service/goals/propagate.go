package goals

import (
	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/service/ledger"
	"gorm.io/gorm"
)

// PropagateIncome is the IncomeRecorded handler: every goal owned by
// the user receives the full income amount. The income is deliberately
// not split across goals — each goal independently gets the whole
// amount. A single UPDATE keeps the batch atomic within the enclosing
// transaction.
func PropagateIncome(tx *gorm.DB, event ledger.IncomeRecorded) error {
	return tx.Model(&models.Goal{}).
		Where("user_id = ?", event.UserID).
		Update("current_amount", gorm.Expr("current_amount + ?", event.Amount)).Error
}
