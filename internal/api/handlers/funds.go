package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
	"github.com/ndewijer/mutualfund-tracker/internal/validation"
)

// FundHandler handles HTTP requests for fund endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Funds handles GET requests to retrieve all funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of model.Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.GetAllFunds(r.Context())
	if err != nil {
		response.RespondError(w, r, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, r, http.StatusOK, funds)
}

// Fund handles GET requests for one fund by ID or unique ID prefix.
//
// Endpoint: GET /api/fund/{fundId}
// Response: 200 OK with model.Fund
// Error: 404 if no fund matches, 400 if the prefix is ambiguous
func (h *FundHandler) Fund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.fundService.GetFund(r.Context(), chi.URLParam(r, "fundId"))
	if err != nil {
		response.RespondServiceError(w, r, "failed to get fund", err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, fund)
}

// CreateFund handles POST requests registering a fund.
//
// Endpoint: POST /api/fund
// Request body: request.CreateFundRequest
// Response: 201 Created with model.Fund
// Error: 400 on malformed JSON or failed validation
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFundRequest
	if err := decodeJSON(r, &req); err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateCreateFund(req); err != nil {
		response.RespondServiceError(w, r, "invalid fund", err)
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), req)
	if err != nil {
		response.RespondServiceError(w, r, "failed to create fund", err)
		return
	}

	response.RespondJSON(w, r, http.StatusCreated, fund)
}

// DeleteFund handles DELETE requests removing a fund.
//
// Endpoint: DELETE /api/fund/{fundId}
// Response: 204 No Content
// Error: 404 if no fund matches, 409 while purchases reference the fund
func (h *FundHandler) DeleteFund(w http.ResponseWriter, r *http.Request) {
	if _, err := h.fundService.DeleteFund(r.Context(), chi.URLParam(r, "fundId")); err != nil {
		response.RespondServiceError(w, r, "failed to delete fund", err)
		return
	}

	response.RespondJSON(w, r, http.StatusNoContent, nil)
}
