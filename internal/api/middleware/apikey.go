package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Norn-cloud/tag-scanner/internal/api/response"
)

// timeTokenMaxAge bounds how long a generated time token stays valid.
const timeTokenMaxAge = 5 * time.Minute

// APIKeyMiddleware protects internal endpoints with a shared API key plus a
// short-lived HMAC time token. The key comes from the INTERNAL_API_KEY
// environment variable; the caller sends it in X-API-Key and a token from
// GenerateTimeToken in X-Time-Token.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication failed", "Authentication not loaded")
			return
		}

		key := r.Header.Get("X-API-Key")
		if key == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Invalid API key")
			return
		}

		token := r.Header.Get("X-Time-Token")
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Missing Time token")
			return
		}
		if !validateTimeToken(expected, token) {
			response.RespondError(w, http.StatusUnauthorized, "authentication failed", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken creates a time token for the given API key: the current
// unix timestamp signed with an HMAC keyed on the API key.
func GenerateTimeToken(apiKey string) string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	return timestamp + ":" + signTimestamp(apiKey, timestamp)
}

func signTimestamp(apiKey, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

func validateTimeToken(apiKey, token string) bool {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return false
	}

	seconds, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}

	issued := time.Unix(seconds, 0)
	// Allow a minute of clock skew on the issuing side.
	if time.Since(issued) > timeTokenMaxAge || time.Until(issued) > time.Minute {
		return false
	}

	expected := signTimestamp(apiKey, parts[0])
	return hmac.Equal([]byte(expected), []byte(parts[1]))
}
