package api

import (
	"log"
	"net/http"
	"os"

	"github.com/fintrack-app/fintrack-server/service/advisor"
	"github.com/fintrack-app/fintrack-server/service/analytics"
	"github.com/fintrack-app/fintrack-server/service/dashboard"
	"github.com/fintrack-app/fintrack-server/service/goals"
	"github.com/fintrack-app/fintrack-server/service/ledger"
	"github.com/fintrack-app/fintrack-server/service/user"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	// Income propagation is wired here so the coupling between the
	// ledger and the goals is visible in one place: transaction
	// creation publishes IncomeRecorded, goals consume it.
	bus := ledger.NewEventBus()
	bus.Subscribe(goals.PropagateIncome)

	transactionHandler := ledger.NewTransactionHandler(s.db, bus)
	transactionHandler.RegisterRoutes(subrouter)

	goalHandler := goals.NewGoalHandler(s.db)
	goalHandler.RegisterRoutes(subrouter)

	dashboardHandler := dashboard.NewDashboardHandler(s.db)
	dashboardHandler.RegisterRoutes(subrouter)

	analyticsHandler := analytics.NewAnalyticsHandler(s.db)
	analyticsHandler.RegisterRoutes(subrouter)

	advisorHandler := advisor.NewAdvisorHandler(s.db, advisor.NewClientFromEnv())
	advisorHandler.RegisterRoutes(subrouter)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handlers.LoggingHandler(os.Stdout, cors(router)))
}
