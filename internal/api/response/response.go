// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses and standardized error responses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/validation"
	"github.com/ndewijer/mutualfund-tracker/internal/valuation"
)

// ErrorResponse represents a structured error response returned by the API.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Encoding errors are logged to the logger carried by the request context
// (see middleware.RequestLogger) but do not fail the response.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode JSON response")
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
// The details parameter can be an error string, additional context, or nil.
//
// Example:
//
//	response.RespondError(w, r, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, r, http.StatusNotFound, "resource not found", "")
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string, details any) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, r, status, response)
}

// RespondServiceError reports err with the status ErrorStatus assigns to it.
// Validation errors carry their per-field messages as details.
func RespondServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		RespondError(w, r, http.StatusBadRequest, message, verr.Fields)
		return
	}
	RespondError(w, r, ErrorStatus(err), message, err.Error())
}

// ErrorStatus maps a service error to an HTTP status code.
//
//   - 404 for unknown funds, purchases and deposits
//   - 400 for bad input (filters, dates, amounts, IDs, sort keys, sources)
//   - 409 for a fund that still has purchases
//   - 502 when a quote source had no usable NAV for a held fund
//   - 500 otherwise
func ErrorStatus(err error) int {
	var missing *valuation.MissingQuoteError
	var verr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrFundNotFound),
		errors.Is(err, apperrors.ErrPurchaseNotFound),
		errors.Is(err, apperrors.ErrDepositNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrAmbiguousID),
		errors.Is(err, apperrors.ErrEmptyID),
		errors.Is(err, apperrors.ErrInvalidFilter),
		errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrUnknownQuoteSource),
		errors.Is(err, apperrors.ErrSnapshotSourceNotRefreshable),
		errors.Is(err, valuation.ErrUnknownSortKey),
		errors.Is(err, validation.ErrInvalidIDPrefix),
		errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrFundInUse):
		return http.StatusConflict
	case errors.As(err, &missing),
		errors.Is(err, apperrors.ErrNAVNotFound),
		errors.Is(err, valuation.ErrInvalidQuote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
