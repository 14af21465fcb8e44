// Package api exposes the service layer over REST. Routes mirror the paths
// the web client calls; request and response bodies keep the client's field
// names (userId, expenseid, paidby) rather than Go-style ones.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"splitzy/internal/auth"
	"splitzy/internal/service"
)

// Server holds the handlers' dependencies.
type Server struct {
	auth        *service.AuthService
	users       *service.UserService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	jwtManager  *auth.JWTManager
}

// NewServer creates a Server with the given services.
func NewServer(
	authSvc *service.AuthService,
	users *service.UserService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
	settlements *service.SettlementService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:        authSvc,
		users:       users,
		groups:      groups,
		expenses:    expenses,
		settlements: settlements,
		jwtManager:  jwtManager,
	}
}

// Handler builds the full route tree with logging, metrics, auth and CORS
// applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests, s.measureRequests)

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	// Everything else requires a bearer token.
	p := r.NewRoute().Subrouter()
	p.Use(s.authenticate)

	p.HandleFunc("/users/resolve-ids", s.handleResolveIDs).Methods(http.MethodPost)
	p.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)
	p.HandleFunc("/users/{id}", s.handleUpdateUser).Methods(http.MethodPut)
	p.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)
	p.HandleFunc("/users/{id}/groups", s.handleListGroups).Methods(http.MethodGet)

	p.HandleFunc("/group", s.handleCreateGroup).Methods(http.MethodPost)
	p.HandleFunc("/group/{id}", s.handleGetGroup).Methods(http.MethodGet)
	p.HandleFunc("/group/{id}/users/{userId}", s.handleAddMember).Methods(http.MethodPut)
	p.HandleFunc("/group/{id}/users/{userId}", s.handleRemoveMember).Methods(http.MethodDelete)

	p.HandleFunc("/group/{id}/expenses", s.handleListExpenses).Methods(http.MethodGet)
	p.HandleFunc("/group/{id}/expenses", s.handleAddExpense).Methods(http.MethodPost)
	p.HandleFunc("/group/{id}/expenses/users/{userId}", s.handleListUserExpenses).Methods(http.MethodGet)
	p.HandleFunc("/group/{id}/expenses/{expenseId}", s.handleEditExpense).Methods(http.MethodPut)
	p.HandleFunc("/group/{id}/expenses/{expenseId}", s.handleDeleteExpense).Methods(http.MethodDelete)
	p.HandleFunc("/group/{id}/expenses/{expenseId}/splits", s.handleGetSplits).Methods(http.MethodGet)

	p.HandleFunc("/group/{id}/balances", s.handleGetBalances).Methods(http.MethodGet)
	p.HandleFunc("/group/{id}/balances/users/{userId}", s.handleGetUserBalance).Methods(http.MethodGet)

	p.HandleFunc("/group/{id}/settlements", s.handleCreateSettlement).Methods(http.MethodPost)
	p.HandleFunc("/group/{id}/settlements", s.handleListSettlements).Methods(http.MethodGet)
	p.HandleFunc("/group/{id}/settlements/paid-by/{userId}", s.handleListSettlementsPaidBy).Methods(http.MethodGet)
	p.HandleFunc("/group/{id}/settlements/paid-to/{userId}", s.handleListSettlementsPaidTo).Methods(http.MethodGet)
	p.HandleFunc("/group/{id}/settlements/{settlementId}", s.handleDeleteSettlement).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	return c.Handler(r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
