package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"splitzy/internal/money"
)

type settlementRequest struct {
	PaidBy string      `json:"paidby"`
	PaidTo string      `json:"paidto"`
	Amount money.Money `json:"amount"`
}

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	settlement, err := s.settlements.Create(r.Context(), mux.Vars(r)["id"], req.PaidBy, req.PaidTo, req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.settlements.ListByGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSettlementResponses(settlements))
}

func (s *Server) handleListSettlementsPaidBy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settlements, err := s.settlements.ListPaidBy(r.Context(), vars["id"], vars["userId"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSettlementResponses(settlements))
}

func (s *Server) handleListSettlementsPaidTo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settlements, err := s.settlements.ListPaidTo(r.Context(), vars["id"], vars["userId"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSettlementResponses(settlements))
}

func (s *Server) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.settlements.Delete(r.Context(), vars["id"], vars["settlementId"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Settlement deleted"})
}
