package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/mandate-configurator/internal/db"
	"github.com/jonathan/mandate-configurator/internal/offer"
	"github.com/jonathan/mandate-configurator/internal/schemas"
	"github.com/jonathan/mandate-configurator/internal/server/middleware"
	"github.com/jonathan/mandate-configurator/internal/types"
)

// maxListLimit caps ?limit on offer lists.
const maxListLimit = 200

// SavedOfferResponse is a stored offer with the offer re-derived from its selection.
type SavedOfferResponse struct {
	Record *db.Offer    `json:"record"`
	Offer  *offer.Offer `json:"offer,omitempty"`
}

// handleSaveOffer stores a confirmable selection for the authenticated user.
func (s *Server) handleSaveOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.SaveOfferRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectionBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errResponse(w, extractValidationErrors(err))
		return
	}

	state, err := schemas.DecodeSelectionState(req.Selection)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	o := offer.Assemble(s.catalog, state)
	if !o.CanConfirm() {
		s.errResponse(w, &ErrOfferBlocked{Validation: o.Validation})
		return
	}

	selection, err := json.Marshal(state)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	saved, err := s.store.SaveOffer(r.Context(), userID, db.OfferInput{
		Title:     req.Title,
		ClientRef: req.ClientRef,
		Lang:      string(o.Lang),
		Days:      o.Days,
		Severity:  string(o.Verdict().Severity),
		Gross:     o.Price.Gross,
		Selection: selection,
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, SavedOfferResponse{Record: saved, Offer: &o})
}

// handleListOffers lists the user's offers, newest first.
func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filters := db.OfferFilters{ClientRef: q.Get("client_ref")}

	switch sev := types.Severity(q.Get("severity")); sev {
	case "":
	case types.SeverityOK, types.SeverityWarning, types.SeverityBlocked:
		filters.Severity = string(sev)
	default:
		s.errResponse(w, &ErrValidation{Field: "severity", Message: "must be ok, warning or blocked"})
		return
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			s.errResponse(w, &ErrValidation{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(maxListLimit)})
			return
		}
		filters.Limit = limit
	}

	offers, err := s.store.ListOffers(r.Context(), userID, filters)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"offers": offers,
		"count":  len(offers),
	})
}

// handleGetOffer returns one stored offer of the user.
func (s *Server) handleGetOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.offerID(w, r)
	if !ok {
		return
	}

	saved, err := s.store.GetOffer(r.Context(), userID, id)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if saved == nil {
		s.errorResponse(w, http.StatusNotFound, "offer not found")
		return
	}

	resp := SavedOfferResponse{Record: saved}
	var state types.SelectionState
	if err := json.Unmarshal(saved.Selection, &state); err != nil {
		s.logger.Warn("stored selection is unreadable, returning record only",
			zap.String("offer_id", saved.ID.String()),
			zap.Error(err))
	} else {
		o := offer.Assemble(s.catalog, state)
		resp.Offer = &o
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeleteOffer deletes one stored offer of the user.
func (s *Server) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.offerID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteOffer(r.Context(), userID, id); err != nil {
		s.errResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) offerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "id", Message: "invalid offer ID"})
		return uuid.Nil, false
	}
	return id, true
}
