package handlers

import (
	"net/http"
	"strings"

	"github.com/Norn-cloud/tag-scanner/internal/api/request"
	"github.com/Norn-cloud/tag-scanner/internal/api/response"
	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/service"
)

// ScanHandler handles HTTP requests for tag OCR endpoints.
type ScanHandler struct {
	scanService *service.ScanService
}

// NewScanHandler creates a new ScanHandler with the provided service dependency.
func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
	}
}

// ScanTag handles POST requests to OCR a photographed jewelry tag and
// extract structured fields. An unreadable image is a 200 with empty parsed
// fields, not an error.
//
// Endpoint: POST /api/scan
// Request Body: ScanTagRequest (imageBase64)
// Response: 200 OK with ScanResult
// Error: 400 Bad Request if the image payload is missing or invalid
// Error: 502 Bad Gateway if the OCR provider call fails
func (h *ScanHandler) ScanTag(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ScanTagRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.ImageBase64) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "imageBase64 is required")
		return
	}

	result, err := h.scanService.ScanTag(r.Context(), req.ImageBase64)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToScanTag.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// StoreVisionKey handles POST requests to store the Google Vision API key
// encrypted in the database. Protected by the internal API key.
//
// Endpoint: POST /api/scan/key
// Request Body: StoreVisionKeyRequest (apiKey)
// Response: 204 No Content on success
// Error: 400 Bad Request if the key is missing or the body is invalid
// Error: 500 Internal Server Error if encryption or storage fails
func (h *ScanHandler) StoreVisionKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.StoreVisionKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "apiKey is required")
		return
	}

	if err := h.scanService.StoreAPIKey(req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store vision key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
