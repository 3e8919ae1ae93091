package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/compose"
	"github.com/jonathan/mandate-configurator/internal/offer"
	"github.com/jonathan/mandate-configurator/internal/pricing"
	"github.com/jonathan/mandate-configurator/internal/rendering"
	"github.com/jonathan/mandate-configurator/internal/schemas"
	"github.com/jonathan/mandate-configurator/internal/types"
	"github.com/jonathan/mandate-configurator/internal/validation"
)

// maxSelectionBytes bounds selection request bodies.
const maxSelectionBytes = 1 << 20

// contractPlaceholders are the query parameters substituted into contracts.
var contractPlaceholders = []string{"client", "contractor", "startDate"}

// ValidateResponse is the verdict over a selection.
type ValidateResponse struct {
	types.LocalizedValidation
	RuleIDs    []string `json:"rule_ids"`
	CanConfirm bool     `json:"can_confirm"`
}

// PriceResponse is the price breakdown with its currency.
type PriceResponse struct {
	types.PriceBreakdown
	Currency string `json:"currency"`
}

// RequirementsResponse is the annex of one role.
type RequirementsResponse struct {
	RoleID       types.RoleID                   `json:"role_id"`
	Lang         types.Lang                     `json:"lang"`
	Label        string                         `json:"label"`
	Requirements []catalog.LocalizedRequirement `json:"requirements"`
}

// handleCatalog returns the catalog localized to ?lang.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.queryLang(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.catalog.Localize(lang))
}

// handleRoleRequirements returns the requirement list of one role.
func (s *Server) handleRoleRequirements(w http.ResponseWriter, r *http.Request) {
	roleID := types.RoleID(chi.URLParam(r, "role_id"))
	if _, ok := s.catalog.Role(roleID); !ok {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unknown role: %s", roleID))
		return
	}
	lang, ok := s.queryLang(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, RequirementsResponse{
		RoleID:       roleID,
		Lang:         lang,
		Label:        s.catalog.ModuleLabel(lang, roleID),
		Requirements: s.catalog.RequirementsFor(lang, roleID),
	})
}

// handleValidate checks the behavior, depth and caring combination.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	state, ok := s.decodeSelection(w, r)
	if !ok {
		return
	}
	result := validation.ValidateSelection(s.catalog, state)
	ids := make([]string, 0, len(result.Messages))
	for _, m := range result.Messages {
		ids = append(ids, m.RuleID)
	}
	s.jsonResponse(w, http.StatusOK, ValidateResponse{
		LocalizedValidation: result.Localize(state.Lang),
		RuleIDs:             ids,
		CanConfirm:          !result.Blocked(),
	})
}

// handlePrice computes the price breakdown.
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	state, ok := s.decodeSelection(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, PriceResponse{
		PriceBreakdown: pricing.PriceSelection(s.catalog, state),
		Currency:       s.catalog.Commercial.Currency,
	})
}

// handleSection3 composes the scope-of-services section.
func (s *Server) handleSection3(w http.ResponseWriter, r *http.Request) {
	state, ok := s.decodeSelection(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, compose.ComposeFromState(s.catalog, state))
}

// handleOffer assembles the full offer. With ?bilingual=true every supported
// language is returned.
func (s *Server) handleOffer(w http.ResponseWriter, r *http.Request) {
	state, ok := s.decodeSelection(w, r)
	if !ok {
		return
	}

	if bilingual, _ := strconv.ParseBool(r.URL.Query().Get("bilingual")); bilingual {
		bundle, err := offer.AssembleBilingual(r.Context(), s.catalog, state)
		if err != nil {
			s.errResponse(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, bundle)
		return
	}
	s.jsonResponse(w, http.StatusOK, offer.Assemble(s.catalog, state))
}

// handleContractText renders the plain-text contract.
func (s *Server) handleContractText(w http.ResponseWriter, r *http.Request) {
	o, ok := s.confirmableOffer(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, rendering.RenderText(o, s.renderOptions(r)))
}

// handleContractHTML renders the HTML contract page.
func (s *Server) handleContractHTML(w http.ResponseWriter, r *http.Request) {
	o, ok := s.confirmableOffer(w, r)
	if !ok {
		return
	}
	html, err := rendering.RenderHTML(o, s.renderOptions(r))
	if err != nil {
		s.errResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// handleContractPDF prints the HTML contract to PDF.
func (s *Server) handleContractPDF(w http.ResponseWriter, r *http.Request) {
	if s.pdf == nil {
		s.errResponse(w, &ErrRendererUnavailable{})
		return
	}
	o, ok := s.confirmableOffer(w, r)
	if !ok {
		return
	}
	html, err := rendering.RenderHTML(o, s.renderOptions(r))
	if err != nil {
		s.errResponse(w, err)
		return
	}
	doc, err := s.pdf.Render(r.Context(), html)
	if err != nil {
		s.errResponse(w, fmt.Errorf("failed to print contract: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="mandate-%s.pdf"`, o.Lang))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// confirmableOffer decodes the selection and assembles its offer, answering
// 409 when the verdict is blocked.
func (s *Server) confirmableOffer(w http.ResponseWriter, r *http.Request) (offer.Offer, bool) {
	state, ok := s.decodeSelection(w, r)
	if !ok {
		return offer.Offer{}, false
	}
	o := offer.Assemble(s.catalog, state)
	if !o.CanConfirm() {
		s.errResponse(w, &ErrOfferBlocked{Validation: o.Validation})
		return offer.Offer{}, false
	}
	return o, true
}

func (s *Server) renderOptions(r *http.Request) rendering.Options {
	q := r.URL.Query()
	placeholders := make(map[string]string, len(contractPlaceholders))
	for _, key := range contractPlaceholders {
		if v := q.Get(key); v != "" {
			placeholders[key] = v
		}
	}
	return rendering.Options{Placeholders: placeholders, TemplatePath: s.templatePath}
}

// decodeSelection reads the body as a selection state. A ?lang query parameter
// overrides the language of the body.
func (s *Server) decodeSelection(w http.ResponseWriter, r *http.Request) (types.SelectionState, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSelectionBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
			return types.SelectionState{}, false
		}
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return types.SelectionState{}, false
	}

	state, err := schemas.DecodeSelectionState(body)
	if err != nil {
		s.errResponse(w, err)
		return types.SelectionState{}, false
	}

	if raw := r.URL.Query().Get("lang"); raw != "" {
		lang, err := types.ParseLang(raw)
		if err != nil {
			s.errResponse(w, &ErrValidation{Field: "lang", Message: err.Error()})
			return types.SelectionState{}, false
		}
		state.Lang = lang
	}
	return state, true
}

// queryLang parses ?lang, defaulting to German.
func (s *Server) queryLang(w http.ResponseWriter, r *http.Request) (types.Lang, bool) {
	lang, err := types.ParseLang(r.URL.Query().Get("lang"))
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "lang", Message: err.Error()})
		return "", false
	}
	return lang, true
}
