package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
	"github.com/ndewijer/mutualfund-tracker/internal/valuation"
)

// StatusHandler serves portfolio valuations.
type StatusHandler struct {
	statusService *service.StatusService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

// Status handles GET requests for the valued portfolio.
//
// Endpoint: GET /api/status?type=&exclude_type=&fund=&exclude_fund=&date=&sort=&source=
// Response: 200 OK with service.StatusReport
// Error: 400 for bad parameters, 502 when the feed lacks a held fund,
// 500 otherwise
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLotFilter(r)
	if err != nil {
		response.RespondServiceError(w, r, "invalid filter", err)
		return
	}
	sortKey, err := valuation.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		response.RespondServiceError(w, r, "invalid sort", err)
		return
	}

	report, err := h.statusService.GetStatus(r.Context(), service.StatusRequest{
		Filter: filter,
		Sort:   sortKey,
		Source: r.URL.Query().Get("source"),
	})
	if err != nil {
		response.RespondServiceError(w, r, apperrors.ErrFailedToRetrieveStatus.Error(), err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, report)
}

// Distribution handles GET requests for the amount invested per fund type.
// With nothing invested the response is an empty array.
//
// Endpoint: GET /api/distribution?type=&exclude_type=&fund=&exclude_fund=&date=
// Response: 200 OK with array of valuation.TypeShare
func (h *StatusHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLotFilter(r)
	if err != nil {
		response.RespondServiceError(w, r, "invalid filter", err)
		return
	}

	shares, err := h.statusService.GetDistribution(r.Context(), filter)
	if errors.Is(err, valuation.ErrNothingInvested) {
		response.RespondJSON(w, r, http.StatusOK, []valuation.TypeShare{})
		return
	}
	if err != nil {
		response.RespondServiceError(w, r, apperrors.ErrFailedToGetDistribution.Error(), err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, shares)
}
