package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/contract-board/internal/db"
	"github.com/jonathan/contract-board/internal/server/middleware"
	"github.com/jonathan/contract-board/internal/types"
)

// handleRegisterProfile creates the profile of the token subject
func (s *Server) handleRegisterProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.RegisterProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	profile, err := s.store.CreateProfile(r.Context(), &db.ProfileCreateInput{ID: userID, Email: req.Email})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	log.Printf("[profiles] registered %s", profile.ID)
	s.jsonResponse(w, http.StatusCreated, profile)
}

// handleMe returns the profile of the token subject
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.store.GetProfileByID(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
