package handlers

import (
	"net/http"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/api/response"
	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/service"
	"github.com/Norn-cloud/tag-scanner/internal/validation"
)

// PriceHandler handles HTTP requests for the market price board.
type PriceHandler struct {
	marketDataService *service.MarketDataService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(marketDataService *service.MarketDataService) *PriceHandler {
	return &PriceHandler{
		marketDataService: marketDataService,
	}
}

// GetPrices handles GET requests to retrieve the cached market view.
// Missing snapshots come back as null with the stale flag set rather than
// an error, so the frontend can render a partial board.
//
// Endpoint: GET /api/prices
// Response: 200 OK with PriceBoard
// Error: 500 Internal Server Error if retrieval fails
func (h *PriceHandler) GetPrices(w http.ResponseWriter, _ *http.Request) {
	board, err := h.marketDataService.Board()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, board)
}

// RefreshPrices handles POST requests to fetch a fresh quote from the
// market feed and cache it.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with the refreshed PriceBoard
// Error: 502 Bad Gateway if the feed is unreachable or returns broken figures
func (h *PriceHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	board, err := h.marketDataService.Refresh(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, board)
}

// SetManualGoldPrice handles POST requests to override the gold prices by
// hand. Protected by the internal API key.
//
// Endpoint: POST /api/prices/gold/manual
// Request Body: ManualGoldPriceRequest
// Response: 200 OK with the stored GoldPriceSnapshot
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the write fails
func (h *PriceHandler) SetManualGoldPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ManualGoldPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateManualGoldPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	snapshot, err := h.marketDataService.SetManualGoldPrice(req.PricePerGram18K, req.PricePerGram21K, req.PricePerGram24K)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store gold price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// SetManualFxRate handles POST requests to override the FX rate by hand.
// Protected by the internal API key.
//
// Endpoint: POST /api/prices/fx/manual
// Request Body: ManualFxRateRequest
// Response: 200 OK with the stored FxRateSnapshot
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the write fails
func (h *PriceHandler) SetManualFxRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ManualFxRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateManualFxRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	snapshot, err := h.marketDataService.SetManualFxRate(req.UsdToEgp)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store fx rate", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
