package request

// ScanTagRequest carries a base64-encoded tag photo for OCR. A data-URI
// prefix is accepted and stripped server-side.
type ScanTagRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// StoreVisionKeyRequest stores the Google Vision API key encrypted in the
// database.
type StoreVisionKeyRequest struct {
	APIKey string `json:"apiKey"`
}
