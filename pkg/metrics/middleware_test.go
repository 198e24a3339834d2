package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(GinMiddleware())
	engine.POST("/api/webhooks", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/webhooks", http.MethodPost, "200"))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhooks", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/webhooks", http.MethodPost, "200"))
	assert.Equal(t, before+1, after)
}

func TestGinMiddleware_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(GinMiddleware())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("unknown", http.MethodGet, "404"))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("unknown", http.MethodGet, "404"))
	assert.Equal(t, before+1, after)
}

func TestGinMiddleware_SkipsListedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(GinMiddleware("/health/live"))
	engine.GET("/health/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/health/live", http.MethodGet, "200"))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/health/live", http.MethodGet, "200"))
	assert.Equal(t, before, after)
}
