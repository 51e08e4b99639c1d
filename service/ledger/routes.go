package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/cmd/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type TransactionHandler struct {
	db    *gorm.DB
	bus   *EventBus
	locks *userLocks
}

func NewTransactionHandler(db *gorm.DB, bus *EventBus) *TransactionHandler {
	return &TransactionHandler{
		db:    db,
		bus:   bus,
		locks: newUserLocks(),
	}
}

// RegisterRoutes registers transaction-related routes with Gorilla Mux
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	transactionRouter := router.PathPrefix("/transactions").Subrouter()

	transactionRouter.HandleFunc("", utils.AuthMiddleware(h.CreateTransaction)).Methods("POST")
	transactionRouter.HandleFunc("", utils.AuthMiddleware(h.GetTransactions)).Methods("GET")
	transactionRouter.HandleFunc("/{id:[0-9]+}", utils.AuthMiddleware(h.GetTransaction)).Methods("GET")
	transactionRouter.HandleFunc("/{id:[0-9]+}", utils.AuthMiddleware(h.UpdateTransaction)).Methods("PUT")
	transactionRouter.HandleFunc("/{id:[0-9]+}", utils.AuthMiddleware(h.DeleteTransaction)).Methods("DELETE")
}

// TransactionRequest is the payload for creating or updating a
// transaction. Amount is always submitted positive; the stored sign
// follows from Type.
type TransactionRequest struct {
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	ClientReference string  `json:"client_reference"`
}

// normalize validates a request and returns the signed amount and
// stored category. Income becomes +amount/"income"; an expense becomes
// -amount with its chosen category. Any failure here is reported before
// a single row is written.
func normalize(req TransactionRequest) (float64, string, error) {
	if req.Amount <= 0 {
		return 0, "", errors.New("amount must be positive")
	}
	switch req.Type {
	case "income":
		return req.Amount, models.CategoryIncome, nil
	case "expense":
		if !models.IsExpenseCategory(req.Category) {
			return 0, "", errors.New("select a valid expense category")
		}
		return -req.Amount, req.Category, nil
	default:
		return 0, "", errors.New("type must be income or expense")
	}
}

// CreateTransaction persists a new transaction. For income it emits an
// IncomeRecorded event inside the same database transaction, so the
// insert and the goal propagation commit together or not at all.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	amount, category, err := normalize(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Writes for a single user are serialized so a retried submission
	// cannot double-apply income propagation.
	lock := h.locks.forUser(userID)
	lock.Lock()
	defer lock.Unlock()

	if req.ClientReference != "" {
		var existing models.Transaction
		result := h.db.Where("user_id = ? AND client_reference = ?", userID, req.ClientReference).First(&existing)
		if result.Error == nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(existing)
			return
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			http.Error(w, "Error creating transaction", http.StatusInternalServerError)
			return
		}
	}

	reference := req.ClientReference
	if reference == "" {
		reference = uuid.New().String()
	}

	transaction := models.Transaction{
		UserID:          userID,
		Amount:          amount,
		Category:        category,
		Description:     req.Description,
		Date:            time.Now().UTC(),
		ClientReference: reference,
	}

	tx := h.db.Begin()
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating transaction", http.StatusInternalServerError)
		return
	}

	if category == models.CategoryIncome {
		event := IncomeRecorded{
			UserID:        userID,
			TransactionID: transaction.ID,
			Amount:        transaction.Amount,
		}
		if err := h.bus.Publish(tx, event); err != nil {
			tx.Rollback()
			http.Error(w, "Error applying income to goals", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error committing transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transaction)
}

// GetTransactions retrieves the authenticated user's transactions,
// newest first.
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

// GetTransaction retrieves a specific transaction by ID
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transaction)
}

// UpdateTransaction edits an existing transaction. Edits never re-emit
// IncomeRecorded: previously propagated goal amounts are left as they
// are, matching the ledger's documented consistency gap.
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	amount, category, err := normalize(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transaction.Amount = amount
	transaction.Category = category
	transaction.Description = req.Description

	if err := h.db.Save(&transaction).Error; err != nil {
		http.Error(w, "Error updating transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transaction)
}

// DeleteTransaction removes a transaction. Prior income propagation is
// not reversed.
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.db.Delete(&transaction).Error; err != nil {
		http.Error(w, "Error deleting transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Transaction deleted successfully",
	})
}

// loadOwned fetches the transaction in the URL and enforces ownership.
// A missing row is 404; someone else's row is 403, never conflated.
func (h *TransactionHandler) loadOwned(w http.ResponseWriter, r *http.Request) (models.Transaction, bool) {
	var transaction models.Transaction

	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return transaction, false
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid transaction ID", http.StatusBadRequest)
		return transaction, false
	}

	if err := h.db.First(&transaction, id).Error; err != nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return transaction, false
	}

	if transaction.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return transaction, false
	}

	return transaction, true
}
