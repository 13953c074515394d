package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tempsuisse/platform/internal/db"
)

var validate = validator.New()

// extractValidationErrors turns a validator error into a short message.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}

// handleListAgencies lists agencies, optionally filtered by canton,
// specialty and a free-text query on name or city.
func (s *Server) handleListAgencies(w http.ResponseWriter, r *http.Request) {
	filter := db.AgencyFilter{
		Canton:    r.URL.Query().Get("canton"),
		Specialty: r.URL.Query().Get("specialty"),
		Query:     r.URL.Query().Get("q"),
	}

	agencies, err := s.store.ListAgencies(r.Context(), filter)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if agencies == nil {
		agencies = []*db.Agency{}
	}
	s.jsonResponse(w, http.StatusOK, agencies)
}

func (s *Server) handleGetAgency(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "agency not found")
		return
	}

	agency, err := s.store.GetAgencyByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if agency == nil {
		s.errorResponse(w, http.StatusNotFound, "agency not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, agency)
}

func (s *Server) handleCreateAgency(w http.ResponseWriter, r *http.Request) {
	var agency db.Agency
	if err := json.NewDecoder(r.Body).Decode(&agency); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(agency); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	created, err := s.store.CreateAgency(r.Context(), &agency)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAgency(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "agency not found")
		return
	}

	var agency db.Agency
	if err := json.NewDecoder(r.Body).Decode(&agency); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(agency); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated, err := s.store.UpdateAgency(r.Context(), id, &agency)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "agency not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAgency(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "agency not found")
		return
	}

	deleted, err := s.store.DeleteAgency(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "agency not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
