package handlers

import (
	"net/http"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
)

// NavHandler serves stored NAV snapshots.
type NavHandler struct {
	navService *service.NavService
}

// NewNavHandler creates a new NavHandler.
func NewNavHandler(navService *service.NavService) *NavHandler {
	return &NavHandler{
		navService: navService,
	}
}

// Navs handles GET requests listing snapshot dates, newest first.
//
// Endpoint: GET /api/nav
// Response: 200 OK with array of model.NavSnapshotDate
func (h *NavHandler) Navs(w http.ResponseWriter, r *http.Request) {
	dates, err := h.navService.GetSnapshotDates(r.Context())
	if err != nil {
		response.RespondError(w, r, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveNavs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, dates)
}

// UpdateNavs handles POST requests that fetch and store today's NAVs.
//
// Endpoint: POST /api/nav/update?source=&date=
// Response: 200 OK with service.NavUpdateResult
// Error: 400 for an unknown source or bad date, 502 when the feed lacks a
// fund, 500 otherwise
func (h *NavHandler) UpdateNavs(w http.ResponseWriter, r *http.Request) {
	asOf, err := request.ParseDate(r.URL.Query().Get("date"), now())
	if err != nil {
		response.RespondServiceError(w, r, "invalid date", err)
		return
	}

	result, err := h.navService.UpdateSnapshots(r.Context(), r.URL.Query().Get("source"), asOf)
	if err != nil {
		response.RespondServiceError(w, r, apperrors.ErrFailedToUpdateNavs.Error(), err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, result)
}
