package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/api/response"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
	"github.com/ndewijer/mutualfund-tracker/internal/validation"
)

// PurchaseHandler handles HTTP requests for purchase lots.
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// Purchases handles GET requests listing purchase lots, oldest first.
//
// Endpoint: GET /api/purchase?type=&exclude_type=&fund=&exclude_fund=&date=
// Response: 200 OK with array of model.PurchaseLot
// Error: 400 for conflicting filters or a bad date
func (h *PurchaseHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLotFilter(r)
	if err != nil {
		response.RespondServiceError(w, r, "invalid filter", err)
		return
	}

	lots, err := h.purchaseService.GetPurchases(r.Context(), filter)
	if err != nil {
		response.RespondServiceError(w, r, "failed to retrieve purchases", err)
		return
	}

	response.RespondJSON(w, r, http.StatusOK, lots)
}

// CreatePurchase handles POST requests recording a buy.
//
// Endpoint: POST /api/purchase
// Request body: request.CreatePurchaseRequest
// Response: 201 Created with model.PurchaseLot
// Error: 400 on malformed JSON or failed validation, 404 for an unknown fund
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		response.RespondError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateCreatePurchase(req); err != nil {
		response.RespondServiceError(w, r, "invalid purchase", err)
		return
	}

	lot, err := h.purchaseService.CreatePurchase(r.Context(), req)
	if err != nil {
		response.RespondServiceError(w, r, "failed to create purchase", err)
		return
	}

	response.RespondJSON(w, r, http.StatusCreated, lot)
}

// DeletePurchase handles DELETE requests removing a lot.
//
// Endpoint: DELETE /api/purchase/{purchaseId}
// Response: 204 No Content
// Error: 404 if no lot matches
func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	if _, err := h.purchaseService.DeletePurchase(r.Context(), chi.URLParam(r, "purchaseId")); err != nil {
		response.RespondServiceError(w, r, "failed to delete purchase", err)
		return
	}

	response.RespondJSON(w, r, http.StatusNoContent, nil)
}
