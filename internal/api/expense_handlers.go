package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"splitzy/internal/models"
	"splitzy/internal/money"
	"splitzy/internal/service"
)

type expenseRequest struct {
	Amount       money.Money       `json:"amount"`
	Description  string            `json:"description"`
	PaidBy       string            `json:"paidBy"`
	Participants []string          `json:"participants"`
	SplitType    string            `json:"splitType"`
	Values       []decimal.Decimal `json:"values"`
}

func (req expenseRequest) toInput() service.ExpenseInput {
	return service.ExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		SplitType:    models.SplitType(req.SplitType),
		Values:       req.Values,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListByGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponses(expenses))
}

func (s *Server) handleListUserExpenses(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	expenses, err := s.expenses.ListByUser(r.Context(), vars["id"], vars["userId"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponses(expenses))
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	expense, err := s.expenses.AddExpense(r.Context(), mux.Vars(r)["id"], req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	expense, err := s.expenses.EditExpense(r.Context(), vars["id"], vars["expenseId"], req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.expenses.DeleteExpense(r.Context(), vars["id"], vars["expenseId"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

func (s *Server) handleGetSplits(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	splits, err := s.expenses.GetSplits(r.Context(), vars["id"], vars["expenseId"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSplitResponses(splits))
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.expenses.GetBalances(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBalanceResponses(balances))
}

// handleGetUserBalance serves the user's balances in the group; with
// ?with=<userId> it narrows to the net balance against that one member.
func (s *Server) handleGetUserBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var balances []service.GroupBalance
	var err error
	if other := r.URL.Query().Get("with"); other != "" {
		balances, err = s.expenses.GetBalanceBetween(r.Context(), vars["id"], vars["userId"], other)
	} else {
		balances, err = s.expenses.GetUserBalance(r.Context(), vars["id"], vars["userId"])
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBalanceResponses(balances))
}
