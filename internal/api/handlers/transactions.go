package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/api/response"
	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/service"
	"github.com/Norn-cloud/tag-scanner/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction handles POST requests to open a new draft transaction.
// The current market inputs are frozen onto the record.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (type, deductionPercent, markupMultiplier)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if no cached market prices exist yet
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidTransactionType), errors.Is(err, apperrors.ErrDeductionOutOfRange):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		case errors.Is(err, apperrors.ErrGoldPriceNotFound), errors.Is(err, apperrors.ErrFxRateNotFound):
			response.RespondError(w, http.StatusConflict, "no market prices cached yet", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// GetTransaction handles GET requests to retrieve a transaction with its items.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with TransactionWithItems
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// ListTransactions handles GET requests to retrieve recent transactions,
// optionally filtered by status via the ?status= query parameter.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if the status filter is not a known status
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	status := model.TransactionStatus(r.URL.Query().Get("status"))
	switch status {
	case "", model.StatusDraft, model.StatusCompleted, model.StatusCancelled:
	default:
		response.RespondError(w, http.StatusBadRequest, "invalid status filter", string(status))
		return
	}

	transactions, err := h.transactionService.ListTransactions(status)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CompleteTransaction handles POST requests to finalize a draft.
//
// Endpoint: POST /api/transaction/{uuid}/complete
// Response: 200 OK with the completed Transaction
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict if the transaction is not a draft or has no items
// Error: 500 Internal Server Error if completion fails
func (h *TransactionHandler) CompleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.CompleteTransaction(transactionID)
	if err != nil {
		respondTransactionMutationError(w, err, "failed to complete transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CancelTransaction handles POST requests to abandon a draft.
//
// Endpoint: POST /api/transaction/{uuid}/cancel
// Response: 200 OK with the cancelled Transaction
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict if the transaction is not a draft
// Error: 500 Internal Server Error if cancellation fails
func (h *TransactionHandler) CancelTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.CancelTransaction(transactionID)
	if err != nil {
		respondTransactionMutationError(w, err, "failed to cancel transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// QuoteTransaction handles GET requests to price a transaction's current
// items and classify the margin risk, without persisting anything.
//
// Endpoint: GET /api/transaction/{uuid}/quote
// Response: 200 OK with TransactionQuote
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if the quote fails
func (h *TransactionHandler) QuoteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	quote, err := h.transactionService.QuoteTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to quote transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

// QuoteStateless handles POST requests to price a hypothetical transaction
// entirely from the request body.
//
// Endpoint: POST /api/quote
// Request Body: QuoteRequest (type, market inputs, items)
// Response: 200 OK with TransactionQuote
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *TransactionHandler) QuoteStateless(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.QuoteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateQuote(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.transactionService.QuoteStateless(req))
}

// respondTransactionMutationError maps lifecycle errors onto HTTP statuses
// shared by the complete and cancel endpoints.
func respondTransactionMutationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTransactionNotDraft):
		response.RespondError(w, http.StatusConflict, apperrors.ErrTransactionNotDraft.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTransactionEmpty):
		response.RespondError(w, http.StatusConflict, apperrors.ErrTransactionEmpty.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
