package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/api/response"
	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/service"
	"github.com/Norn-cloud/tag-scanner/internal/validation"
)

// ItemHandler handles HTTP requests for item endpoints. Items only exist
// inside a transaction; all mutations require the parent to be a draft.
type ItemHandler struct {
	transactionService *service.TransactionService
}

// NewItemHandler creates a new ItemHandler with the provided service dependency.
func NewItemHandler(transactionService *service.TransactionService) *ItemHandler {
	return &ItemHandler{
		transactionService: transactionService,
	}
}

// AddItem handles POST requests to attach an item to a draft transaction.
// The item is priced against the transaction's frozen market inputs and the
// transaction totals are recalculated.
//
// Endpoint: POST /api/transaction/{uuid}/item
// Request Body: AddItemRequest
// Response: 201 Created with the priced Item
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict if the transaction is not a draft
// Error: 500 Internal Server Error if creation fails
func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AddItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddItem(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	item, err := h.transactionService.AddItem(transactionID, req)
	if err != nil {
		respondItemMutationError(w, err, "failed to add item")
		return
	}

	response.RespondJSON(w, http.StatusCreated, item)
}

// UpdateItemPrice handles PUT requests to override the cashier-facing price
// of an item.
//
// Endpoint: PUT /api/item/{uuid}/price
// Request Body: UpdateItemPriceRequest (adjustedPrice)
// Response: 200 OK with the updated Item
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if item not found
// Error: 409 Conflict if the item is locked or the transaction is not a draft
// Error: 500 Internal Server Error if the update fails
func (h *ItemHandler) UpdateItemPrice(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateItemPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateItemPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	item, err := h.transactionService.UpdateItemPrice(itemID, req)
	if err != nil {
		respondItemMutationError(w, err, "failed to update item price")
		return
	}

	response.RespondJSON(w, http.StatusOK, item)
}

// ToggleItemLock handles POST requests to flip the lock flag on an item.
//
// Endpoint: POST /api/item/{uuid}/lock
// Response: 200 OK with the updated Item
// Error: 404 Not Found if item not found
// Error: 409 Conflict if the transaction is not a draft
// Error: 500 Internal Server Error if the update fails
func (h *ItemHandler) ToggleItemLock(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "uuid")

	item, err := h.transactionService.ToggleItemLock(itemID)
	if err != nil {
		respondItemMutationError(w, err, "failed to toggle item lock")
		return
	}

	response.RespondJSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE requests to remove an item from a draft.
//
// Endpoint: DELETE /api/item/{uuid}
// Response: 204 No Content on successful removal
// Error: 404 Not Found if item not found
// Error: 409 Conflict if the item is locked or the transaction is not a draft
// Error: 500 Internal Server Error if removal fails
func (h *ItemHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "uuid")

	if err := h.transactionService.RemoveItem(itemID); err != nil {
		respondItemMutationError(w, err, "failed to remove item")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func respondItemMutationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrItemNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrItemNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTransactionNotDraft):
		response.RespondError(w, http.StatusConflict, apperrors.ErrTransactionNotDraft.Error(), err.Error())
	case errors.Is(err, apperrors.ErrItemLocked):
		response.RespondError(w, http.StatusConflict, apperrors.ErrItemLocked.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
