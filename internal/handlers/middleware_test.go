package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newOriginRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OriginFilter([]string{"https://app.example"}))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestOriginFilter(t *testing.T) {
	router := newOriginRouter()

	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
	}{
		{"allowed origin", "https://app.example", http.MethodGet, http.StatusOK},
		{"disallowed origin", "https://evil.example", http.MethodGet, http.StatusForbidden},
		{"no origin header", "", http.MethodGet, http.StatusOK},
		{"preflight", "https://app.example", http.MethodOptions, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestOriginFilterSetsCORSHeaders(t *testing.T) {
	router := newOriginRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("expected CORS origin header, got %q", got)
	}
}

func TestOriginFilterChecksWebSocketOriginHeader(t *testing.T) {
	router := newOriginRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Sec-WebSocket-Origin", "https://evil.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for disallowed websocket origin, got %d", w.Code)
	}
}
