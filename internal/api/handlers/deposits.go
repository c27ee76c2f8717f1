package handlers

import (
	"net/http"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
	"github.com/ndewijer/mutualfund-tracker/internal/validation"
)

// DepositHandler handles HTTP requests for fixed deposits.
type DepositHandler struct {
	depositService *service.DepositService
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositService *service.DepositService) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
	}
}

// Deposits handles GET requests listing fixed deposits.
//
// Endpoint: GET /api/deposit?sort=amt|name|rate|date
// Response: 200 OK with array of model.FixedDeposit
func (h *DepositHandler) Deposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.depositService.GetDeposits(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "failed to retrieve fixed deposits", err.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, deposits)
}

// CreateDeposit handles POST requests recording a fixed deposit.
//
// Endpoint: POST /api/deposit
// Request body: request.CreateDepositRequest
// Response: 201 Created with model.FixedDeposit
func (h *DepositHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDepositRequest
	if err := decodeJSON(r, &req); err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateCreateDeposit(req); err != nil {
		response.RespondServiceError(w, r, "invalid fixed deposit", err)
		return
	}

	fd, err := h.depositService.CreateDeposit(r.Context(), req)
	if err != nil {
		response.RespondServiceError(w, r, "failed to create fixed deposit", err)
		return
	}

	response.RespondJSON(w, r, http.StatusCreated, fd)
}
