// Package vision wraps the Google Cloud Vision text-detection API for tag
// scanning. The output is best-effort: every parsed field is optional and
// must be confirmed by a human before it lands on an item.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const annotateURL = "https://vision.googleapis.com/v1/images:annotate"

// Client extracts the full text from a tag image. Implementations return
// an empty string (not an error) when the image contains no readable text.
type Client interface {
	DetectText(ctx context.Context, imageBase64 string) (string, error)
}

// APIClient calls the Vision REST API with an API key.
type APIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// NewAPIClient creates a Vision client with default HTTP settings.
func NewAPIClient(apiKey string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		apiKey:     apiKey,
		baseURL:    annotateURL,
	}
}

type annotateImage struct {
	Content string `json:"content"`
}

type annotateFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type annotateEntry struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateRequest struct {
	Requests []annotateEntry `json:"requests"`
}

type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
	} `json:"responses"`
}

// DetectText runs TEXT_DETECTION on the given base64 image and returns the
// full detected text. A data-URI prefix on the payload is stripped first.
func (c *APIClient) DetectText(ctx context.Context, imageBase64 string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("vision API key not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	reqBody := annotateRequest{
		Requests: []annotateEntry{{
			Image:    annotateImage{Content: stripDataURI(imageBase64)},
			Features: []annotateFeature{{Type: "TEXT_DETECTION", MaxResults: 10}},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API error: %s", string(data))
	}

	var response annotateResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return "", err
	}

	if len(response.Responses) == 0 || len(response.Responses[0].TextAnnotations) == 0 {
		return "", nil
	}

	return response.Responses[0].TextAnnotations[0].Description, nil
}

// stripDataURI removes a leading "data:image/...;base64," marker if present.
func stripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, ";base64,"); idx >= 0 {
		return s[idx+len(";base64,"):]
	}
	return s
}
