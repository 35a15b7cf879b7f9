package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"linkgate/internal/config"
	"linkgate/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRouter_Health(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRouter_Metrics(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "linkgate_http_requests_total")
}

func TestRouter_Robots(t *testing.T) {
	t.Run("Production disallows interstitial and API", func(t *testing.T) {
		h, _ := setupTestHandlerWithConfig(config.Config{
			AppEnv:        "production",
			SessionSecret: "test-secret-12345678901234567890123456789012",
			AuthMode:      config.AuthModeSession,
		})
		r := setupTestRouter(h)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/robots.txt", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Disallow: /out/")
		assert.Contains(t, w.Body.String(), "Disallow: /api/")
	})

	t.Run("Non-production disallows everything", func(t *testing.T) {
		h, _ := setupTestHandler()
		r := setupTestRouter(h)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/robots.txt", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Disallow: /\n")
	})
}

func TestRouter_RateLimitMiddleware(t *testing.T) {
	h, _ := setupTestHandler()
	gin.SetMode(gin.TestMode)

	limiter := services.NewIPRateLimiter(rate.Limit(1), 1, h.logger)
	r := h.SetupRouter(limiter, "../../web/templates/*.html", "")

	// First request allowed
	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)

	// Second request blocked
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestRouter_RateLimit429CarriesGateHeaders(t *testing.T) {
	h, _ := setupTestHandler()
	gin.SetMode(gin.TestMode)

	limiter := services.NewIPRateLimiter(rate.Limit(1), 1, h.logger)
	r := h.SetupRouter(limiter, "../../web/templates/*.html", "")

	// Exhaust the single-token bucket
	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("POST", "/api/wrap-link", nil)
	r.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Contains(t, w2.Header().Get("X-Robots-Tag"), "noindex")
	assert.Contains(t, w2.Header().Get("Cache-Control"), "no-store")
	assert.Contains(t, w2.Header().Get("Content-Security-Policy"), "nonce-")
}

func TestSetupRouter_Minimal(t *testing.T) {
	h, _ := setupTestHandler()
	gin.SetMode(gin.TestMode)
	r := h.SetupRouter(nil, "", "")
	assert.NotNil(t, r)
}
