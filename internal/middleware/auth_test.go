package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm_assistant_backend/internal/config"

	"github.com/gin-gonic/gin"
)

func newAuthRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := &config.Config{API: config.APIConfig{Key: key}}
	router.Use(APIKeyMiddleware(cfg))
	router.GET("/guarded", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAPIKeyMiddlewareAccepts(t *testing.T) {
	router := newAuthRouter("secret-api-key-0123")

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("x-api-key", "secret-api-key-0123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAPIKeyMiddlewareRejectsWrongKey(t *testing.T) {
	router := newAuthRouter("secret-api-key-0123")

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("x-api-key", "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAPIKeyMiddlewareRejectsMissingKey(t *testing.T) {
	router := newAuthRouter("secret-api-key-0123")

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
