package advisor

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/fintrack-app/fintrack-server/cmd/models"
	"github.com/fintrack-app/fintrack-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type AdvisorHandler struct {
	db        *gorm.DB
	generator TextGenerator
}

func NewAdvisorHandler(db *gorm.DB, generator TextGenerator) *AdvisorHandler {
	return &AdvisorHandler{db: db, generator: generator}
}

// RegisterRoutes registers advisor routes with Gorilla Mux. The chat
// endpoint deliberately skips AuthMiddleware: anonymous visitors get
// site help without a personal data context.
func (h *AdvisorHandler) RegisterRoutes(router *mux.Router) {
	advisorRouter := router.PathPrefix("/advisor").Subrouter()
	advisorRouter.HandleFunc("/tips", utils.AuthMiddleware(h.GetTips)).Methods("GET")
	advisorRouter.HandleFunc("/summary", utils.AuthMiddleware(h.GetSummary)).Methods("GET")

	router.HandleFunc("/chat", h.Chat).Methods("POST")
}

func aiEnabled() bool {
	return os.Getenv("AI_ENABLED") != "false"
}

// GetSummary returns the deterministic advice summary without calling
// the collaborator.
func (h *AdvisorHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"summary": NewSummary(transactions).Text(),
	})
}

// GetTips feeds the advice summary to the text-generation collaborator
// and returns its budgeting tips.
func (h *AdvisorHandler) GetTips(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !aiEnabled() {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"tips": "The AI assistant is disabled.",
		})
		return
	}

	var transactions []models.Transaction
	if err := h.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		http.Error(w, "Error retrieving transactions", http.StatusInternalServerError)
		return
	}

	prompt := "Based on the user's financial data, provide personalized money-management advice. " +
		"Point out what the user spends the most on and suggest concrete ways to cut spending in that category. " +
		"Be brief, give 3-5 tips. Do not use emoji.\n" +
		NewSummary(transactions).Text()

	tips, err := h.generator.Generate(prompt)
	if err != nil {
		log.Printf("Error generating tips: %v", err)
		tips = "Could not get advice from the AI."
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"tips": tips})
}

const siteDescription = `You are the assistant for a personal finance tracker website. Answer user questions about the site as concisely as possible.

Site overview:
- Home (/): welcome page with sign-in and registration.
- Register (/register): username, email, password, password confirmation.
- Login (/login): email and password.
- Dashboard (/dashboard): balance, recent transactions, spending by category, savings goals with progress.
- Add transaction (/add_transaction): type (income/expense), amount, expense category, description.
- Add goal (/add_goal): name, target amount, current amount, description.
- Analytics (/analytics): spending charts by category and month, savings advice.

Answer concisely and help with navigating and using the site. Take the user's current page into account.`

// Chat answers site questions. When the request carries a valid token
// the prompt includes the user's ledger context, the way the dashboard
// would see it.
func (h *AdvisorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !aiEnabled() {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "The AI assistant is disabled.",
		})
		return
	}

	var req struct {
		Message string `json:"message"`
		Page    string `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Page == "" {
		req.Page = "/"
	}

	prompt := fmt.Sprintf("%s\n\n%s\nCurrent page: %s\nQuestion: %s",
		siteDescription, h.userContext(r), req.Page, req.Message)

	message, err := h.generator.Generate(prompt)
	if err != nil {
		log.Printf("Error generating chat reply: %v", err)
		message = "AI error. Try again later."
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func (h *AdvisorHandler) userContext(r *http.Request) string {
	var b strings.Builder
	b.WriteString("User data:\n")

	userID, ok := utils.OptionalUserID(r)
	if !ok {
		b.WriteString("The user is not signed in; no personal data is available.\n")
		return b.String()
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		b.WriteString("The user is not signed in; no personal data is available.\n")
		return b.String()
	}

	var transactions []models.Transaction
	h.db.Where("user_id = ?", userID).Order("date").Find(&transactions)
	var goalList []models.Goal
	h.db.Where("user_id = ?", userID).Order("id").Find(&goalList)

	var balance float64
	for _, t := range transactions {
		balance += t.Amount
	}

	fmt.Fprintf(&b, "- Balance: %.2f\n", balance)
	fmt.Fprintf(&b, "- Transactions: %d\n", len(transactions))
	fmt.Fprintf(&b, "- Goals: %d\n", len(goalList))
	fmt.Fprintf(&b, "- Email verified: %t\n", user.EmailVerified)

	b.WriteString("Transactions:\n")
	if len(transactions) == 0 {
		b.WriteString("No transactions.\n")
	}
	for _, t := range transactions {
		description := t.Description
		if description == "" {
			description = "none"
		}
		fmt.Fprintf(&b, "%s: %.2f, category: %s, description: %s\n",
			t.Date.Format("2006-01-02"), t.Amount, models.CategoryLabel(t.Category), description)
	}

	b.WriteString("Goals:\n")
	if len(goalList) == 0 {
		b.WriteString("No goals.\n")
	}
	for _, g := range goalList {
		description := g.Description
		if description == "" {
			description = "none"
		}
		fmt.Fprintf(&b, "Goal: %s, target: %.2f, current: %.2f, description: %s\n",
			g.Name, g.TargetAmount, g.CurrentAmount, description)
	}

	return b.String()
}
