package httpkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homegate_search/platform/apperr"
	"homegate_search/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleErrorUsesWrappedKind(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := fmt.Errorf("search: %w", apperr.Ambiguous("too many locations"))
	if !HandleError(c, err) {
		t.Fatal("expected error to be handled")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Kind != "ambiguous" || body.Error != "too many locations" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHandleErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	if HandleError(c, nil) {
		t.Fatal("expected nil error to be ignored")
	}
}

func TestRequestIDPropagates(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		value, _ := c.Request.Context().Value(logger.RequestIDKey).(string)
		c.String(http.StatusOK, value)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Body.String() != "abc-123" {
		t.Fatalf("expected request id in context, got %q", rec.Body.String())
	}
	if rec.Header().Get(HeaderRequestID) != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", rec.Header().Get(HeaderRequestID))
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Fatal("expected generated request id")
	}
}

func TestIPRateLimiterRejectsBurst(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 1, logger.Discard())
	engine := gin.New()
	engine.Use(limiter.RateLimit())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	if first.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}
