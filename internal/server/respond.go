package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/mandate-configurator/internal/schemas"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error      string               `json:"error"`
	Fields     []schemas.FieldError `json:"fields,omitempty"`
	Validation any                  `json:"validation,omitempty"`
}

// writeJSON writes data as a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, ErrorResponse{Error: message})
}

// writeErr maps err to its status and body. Internal errors are logged and
// replaced by a generic message.
func writeErr(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := HTTPStatus(err)
	resp := ErrorResponse{Error: err.Error()}

	var selectionErr *schemas.ValidationError
	var blocked *ErrOfferBlocked
	switch {
	case errors.As(err, &selectionErr):
		resp.Error = "invalid selection state"
		resp.Fields = selectionErr.Errors
	case errors.As(err, &blocked):
		resp.Validation = blocked.Validation
	case status == http.StatusInternalServerError:
		logger.Error("request failed", zap.Error(err))
		resp.Error = "internal server error"
	}
	writeJSON(w, logger, status, resp)
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) *ErrValidation {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// First failing field only
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: fmt.Sprintf("failed '%s'", ve.Tag())}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}
