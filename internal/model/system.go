package model

// VersionInfo contains version and feature information for the application.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	DbVersion  string          `json:"db_version"`
	Features   map[string]bool `json:"features"`
}

// ScanResult is the best-effort output of OCR-scanning a tag image. Every
// parsed field is optional and untrusted until a human confirms it.
type ScanResult struct {
	RawText string    `json:"rawText"`
	Parsed  TagFields `json:"parsed"`
}

// TagFields holds whatever the tag parser could extract. Zero values mean
// the field was not found.
type TagFields struct {
	WeightGrams float64 `json:"weight,omitempty"`
	Karat       int     `json:"karat,omitempty"`
	Sku         string  `json:"sku,omitempty"`
	Cogs        float64 `json:"cogs,omitempty"`
}
