package goals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type GoalHandler struct {
	db *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{db: db}
}

// RegisterRoutes registers goal-related routes with Gorilla Mux
func (h *GoalHandler) RegisterRoutes(router *mux.Router) {
	goalRouter := router.PathPrefix("/goals").Subrouter()

	goalRouter.HandleFunc("", utils.AuthMiddleware(h.CreateGoal)).Methods("POST")
	goalRouter.HandleFunc("", utils.AuthMiddleware(h.GetGoals)).Methods("GET")
	goalRouter.HandleFunc("/{id:[0-9]+}", utils.AuthMiddleware(h.GetGoal)).Methods("GET")
	goalRouter.HandleFunc("/{id:[0-9]+}", utils.AuthMiddleware(h.UpdateGoal)).Methods("PUT")
	goalRouter.HandleFunc("/{id:[0-9]+}", utils.AuthMiddleware(h.DeleteGoal)).Methods("DELETE")
}

type GoalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Description   string  `json:"description"`
}

func validateGoalRequest(req GoalRequest) error {
	if req.Name == "" {
		return errors.New("goal name is required")
	}
	if req.TargetAmount < 0 {
		return errors.New("target amount must not be negative")
	}
	if req.CurrentAmount < 0 {
		return errors.New("current amount must not be negative")
	}
	return nil
}

// CreateGoal creates a new savings goal for the authenticated user.
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateGoalRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal := models.Goal{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Description:   req.Description,
	}

	if err := h.db.Create(&goal).Error; err != nil {
		http.Error(w, "Error creating goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(NewGoalView(goal))
}

// GetGoals retrieves all goals of the authenticated user with their
// progress fields.
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var list []models.Goal
	if err := h.db.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		http.Error(w, "Error retrieving goals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewGoalViews(list))
}

// GetGoal retrieves a specific goal by ID
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewGoalView(goal))
}

// UpdateGoal edits a goal. This is the only path besides income
// propagation that may change CurrentAmount.
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goal, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateGoalRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal.Name = req.Name
	goal.TargetAmount = req.TargetAmount
	goal.CurrentAmount = req.CurrentAmount
	goal.Description = req.Description

	if err := h.db.Save(&goal).Error; err != nil {
		http.Error(w, "Error updating goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NewGoalView(goal))
}

// DeleteGoal removes a goal
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goal, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.db.Delete(&goal).Error; err != nil {
		http.Error(w, "Error deleting goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Goal deleted successfully",
	})
}

func (h *GoalHandler) loadOwned(w http.ResponseWriter, r *http.Request) (models.Goal, bool) {
	var goal models.Goal

	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return goal, false
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return goal, false
	}

	if err := h.db.First(&goal, id).Error; err != nil {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return goal, false
	}

	if goal.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return goal, false
	}

	return goal, true
}
