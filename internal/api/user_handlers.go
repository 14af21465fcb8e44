package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"splitzy/internal/apperr"
)

type updateUserRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

type resolveIDsRequest struct {
	Emails []string `json:"emails"`
}

type resolveIDsResponse struct {
	UserIDs []string `json:"userIds"`
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if claims := sessionClaims(r.Context()); claims == nil || claims.UserID != id {
		respondError(w, r, apperr.Unauthorized("Cannot modify another user's account"))
		return
	}
	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.users.UpdateUser(r.Context(), id, req.Username, req.Phone)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if claims := sessionClaims(r.Context()); claims == nil || claims.UserID != id {
		respondError(w, r, apperr.Unauthorized("Cannot delete another user's account"))
		return
	}
	if err := s.users.DeleteUser(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (s *Server) handleResolveIDs(w http.ResponseWriter, r *http.Request) {
	var req resolveIDsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ids, err := s.users.ResolveIDs(r.Context(), req.Emails)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resolveIDsResponse{UserIDs: ids})
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroupsByUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = groupResponse{GroupID: g.ID, GroupName: g.Name, Users: []userResponse{}}
	}
	respondJSON(w, http.StatusOK, out)
}
