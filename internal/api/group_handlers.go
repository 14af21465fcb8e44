package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

type createGroupRequest struct {
	Name    string   `json:"name"`
	UserIDs []string `json:"userIds"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.UserIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}
	details, err := s.groups.GetGroup(r.Context(), group.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGroupResponse(details.Group, details.Members))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	details, err := s.groups.GetGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toGroupResponse(details.Group, details.Members))
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.groups.AddMember(r.Context(), vars["id"], vars["userId"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User added to group"})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.groups.RemoveMember(r.Context(), vars["id"], vars["userId"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "User removed from group"})
}
