package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Norn-cloud/tag-scanner/internal/api/middleware"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLogger(t *testing.T) {
	t.Run("logs method, path, status and size", func(t *testing.T) {
		buf := captureLog(t)
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("ok")) //nolint:errcheck
		})
		handler := chimiddleware.RequestID(middleware.Logger(next))

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		line := buf.String()
		if !strings.Contains(line, "POST /api/transaction 201 2B") {
			t.Errorf("Expected method, path, status and size in log line, got %q", line)
		}
	})

	t.Run("tags the line with the assigned request ID", func(t *testing.T) {
		buf := captureLog(t)
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := chimiddleware.RequestID(middleware.Logger(next))

		req := httptest.NewRequest(http.MethodGet, "/api/prices", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if !regexp.MustCompile(`\[[^\]]+\] GET /api/prices`).MatchString(buf.String()) {
			t.Errorf("Expected a non-empty request ID tag, got %q", buf.String())
		}
	})

	t.Run("strips newlines from the request path", func(t *testing.T) {
		buf := captureLog(t)
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := chimiddleware.RequestID(middleware.Logger(next))

		req := httptest.NewRequest(http.MethodGet, "/api/prices", nil)
		req.URL.Path = "/api/\nforged"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if strings.Contains(buf.String(), "\nforged") {
			t.Errorf("Expected newline stripped from logged path, got %q", buf.String())
		}
	})
}
