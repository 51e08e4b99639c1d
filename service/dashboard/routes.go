package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/cmd/utils"
	"github.com/fintrack-app/fintrack-server/service/analytics"
	"github.com/fintrack-app/fintrack-server/service/goals"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// RegisterRoutes registers dashboard-related routes with Gorilla Mux
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	dashboardRouter := router.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.HandleFunc("", utils.AuthMiddleware(h.GetDashboard)).Methods("GET")
}

type DashboardView struct {
	Balance          float64              `json:"balance"`
	Transactions     []models.Transaction `json:"transactions"`
	CategorySpending map[string]float64   `json:"category_spending"`
	Goals            []goals.GoalView     `json:"goals"`
	CategoryMapping  map[string]string    `json:"category_mapping"`
}

// GetDashboard assembles the user's dashboard: running balance,
// transactions, per-category expense totals and goals with progress.
// A pure read — calling it twice without mutation yields the same view.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var transactions []models.Transaction
	if err := h.db.Where("user_id = ?", userID).Order("date DESC").Find(&transactions).Error; err != nil {
		http.Error(w, "Error retrieving transactions", http.StatusInternalServerError)
		return
	}

	var goalList []models.Goal
	if err := h.db.Where("user_id = ?", userID).Order("id").Find(&goalList).Error; err != nil {
		http.Error(w, "Error retrieving goals", http.StatusInternalServerError)
		return
	}

	view := DashboardView{
		Balance:          analytics.Balance(transactions),
		Transactions:     transactions,
		CategorySpending: analytics.SpendingByCategory(transactions),
		Goals:            goals.NewGoalViews(goalList),
		CategoryMapping:  models.CategoryLabels,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}
