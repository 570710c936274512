package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.POST("/render", func(c *gin.Context) {
		c.Header("X-Request-ID", "req_1")
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantCORSHeader bool
	}{
		{"simple POST with origin", http.MethodPost, "http://localhost:3000", http.StatusOK, true},
		{"preflight", http.MethodOptions, "http://localhost:3000", http.StatusNoContent, true},
		{"no origin header", http.MethodPost, "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/render", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			w := serve(router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORSHeader {
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Contains(t, cfg.AllowOrigins, "*")
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "POST")
	assert.Contains(t, cfg.ExposeHeaders, "X-Request-ID")
	assert.False(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 0.5, Burst: 2}))
	router.POST("/stats", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/stats", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		assert.Equal(t, http.StatusOK, serve(router, req).Code, "request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/stats", nil)
	req.RemoteAddr = "192.168.1.1:1234"
	w := serve(router, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"success":false,"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitDifferentClients(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))
	router.POST("/stats", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/stats", nil)
		req.RemoteAddr = addr
		return serve(router, req).Code
	}

	assert.Equal(t, http.StatusOK, send("192.168.1.1:1234"))
	assert.Equal(t, http.StatusOK, send("192.168.1.2:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("192.168.1.1:1234"))
}

func TestRateLimitKeyFunc(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		KeyFunc:           func(c *gin.Context) string { return c.GetHeader("X-User") },
	}))
	router.POST("/stats", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/stats", nil)
		req.Header.Set("X-User", user)
		return serve(router, req).Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusOK, send("bob"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
}

func TestGlobalRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(GlobalRateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.168.1.1" + string(rune('0'+i)) + ":1234"
		assert.Equal(t, http.StatusOK, serve(router, req).Code, "request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.3:1234"
	assert.Equal(t, http.StatusTooManyRequests, serve(router, req).Code)
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()

	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Burst)
	assert.Nil(t, cfg.KeyFunc)
}

func TestBodyLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(BodyLimit(8))
	router.POST("/stats", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	t.Run("within limit", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodPost, "/stats", strings.NewReader("VCB+abc")))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "VCB+abc", w.Body.String())
	})

	t.Run("declared too large", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodPost, "/stats", strings.NewReader("VCB+abcdefgh")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "request body too large")
	})

	t.Run("streamed too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/stats", io.NopCloser(strings.NewReader("VCB+abcdefgh")))
		req.ContentLength = -1
		assert.Equal(t, http.StatusRequestEntityTooLarge, serve(router, req).Code)
	})
}

func BenchmarkRateLimit(b *testing.B) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1e9, Burst: 1 << 30}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:1234"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}
