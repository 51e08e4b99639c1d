package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

// RegisterRoutes registers analytics routes with Gorilla Mux
func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	analyticsRouter := router.PathPrefix("/analytics").Subrouter()
	analyticsRouter.HandleFunc("", utils.AuthMiddleware(h.GetAnalytics)).Methods("GET")
}

type AnalyticsView struct {
	SpendingByCategory map[string]float64 `json:"spending_by_category"`
	MonthlySpending    map[string]float64 `json:"monthly_spending"`
	Advice             []string           `json:"advice"`
}

// GetAnalytics aggregates the user's ledger into category and monthly
// breakdowns plus deterministic advice lines.
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var transactions []models.Transaction
	if err := h.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		http.Error(w, "Error retrieving transactions", http.StatusInternalServerError)
		return
	}

	view := AnalyticsView{
		SpendingByCategory: SpendingByCategory(transactions),
		MonthlySpending:    MonthlySpending(transactions),
		Advice:             AdviceLines(transactions),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// AdviceLines builds the savings suggestions shown on the analytics
// page: a top-category nudge when expenses exist and an overspend
// warning when the balance is negative.
func AdviceLines(transactions []models.Transaction) []string {
	advice := []string{}
	if top, _, ok := TopSpendingCategory(transactions); ok {
		advice = append(advice, fmt.Sprintf("You spend the most on %s. Try to cut back in that category.", top))
	}
	if Balance(transactions) < 0 {
		advice = append(advice, "Your expenses exceed your income. Consider increasing income or reducing spending.")
	}
	return advice
}
