package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/api/response"
	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/service"
	"github.com/Norn-cloud/tag-scanner/internal/validation"
)

// CoinPriceHandler handles HTTP requests for the branded-coin price table.
type CoinPriceHandler struct {
	coinPriceService *service.CoinPriceService
}

// NewCoinPriceHandler creates a new CoinPriceHandler with the provided service dependency.
func NewCoinPriceHandler(coinPriceService *service.CoinPriceService) *CoinPriceHandler {
	return &CoinPriceHandler{
		coinPriceService: coinPriceService,
	}
}

// ListCoinPrices handles GET requests to retrieve the coin price table.
// An optional ?category= filter narrows to one category; adding &weight=
// looks up a single row.
//
// Endpoint: GET /api/coin-prices
// Response: 200 OK with array of CoinPrice (or a single CoinPrice for an
// exact category+weight lookup)
// Error: 400 Bad Request if the weight parameter is not a number
// Error: 404 Not Found if an exact lookup matches nothing
// Error: 500 Internal Server Error if retrieval fails
func (h *CoinPriceHandler) ListCoinPrices(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	weightParam := r.URL.Query().Get("weight")

	if category != "" && weightParam != "" {
		weight, err := strconv.ParseFloat(weightParam, 64)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid weight parameter", err.Error())
			return
		}

		coin, err := h.coinPriceService.LookupCoinPrice(category, weight)
		if err != nil {
			if errors.Is(err, apperrors.ErrCoinPriceNotFound) {
				response.RespondError(w, http.StatusNotFound, apperrors.ErrCoinPriceNotFound.Error(), err.Error())
				return
			}
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCoinPrices.Error(), err.Error())
			return
		}

		response.RespondJSON(w, http.StatusOK, coin)
		return
	}

	var err error
	var coins any
	if category != "" {
		coins, err = h.coinPriceService.GetCategory(category)
	} else {
		coins, err = h.coinPriceService.ListCoinPrices()
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCoinPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, coins)
}

// UpsertCoinPrice handles PUT requests to create or replace one row of the
// coin price table. Protected by the internal API key.
//
// Endpoint: PUT /api/coin-prices
// Request Body: UpsertCoinPriceRequest
// Response: 200 OK with the stored CoinPrice
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the write fails
func (h *CoinPriceHandler) UpsertCoinPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertCoinPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertCoinPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	coin, err := h.coinPriceService.UpsertCoinPrice(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store coin price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, coin)
}
