package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestLimiter(t *testing.T, messagesPerMinute, uploadsPerHour int) *UserRateLimiter {
	t.Helper()
	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	limiter := NewUserRateLimiter(RateLimiterConfig{
		MessagesPerMinute: messagesPerMinute,
		UploadsPerHour:    uploadsPerHour,
		CleanupInterval:   time.Hour,
	}, logger)
	t.Cleanup(limiter.Stop)
	return limiter
}

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 0.001)

	for i := 0; i < 3; i++ {
		if !bucket.Allow() {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if bucket.Allow() {
		t.Error("bucket should be exhausted after consuming all tokens")
	}
}

func TestAllowMessagePerIdentity(t *testing.T) {
	limiter := newTestLimiter(t, 2, 10)

	if !limiter.AllowMessage("alice") || !limiter.AllowMessage("alice") {
		t.Fatal("first two messages should be allowed")
	}
	if limiter.AllowMessage("alice") {
		t.Error("third message within the window should be rejected")
	}
	if !limiter.AllowMessage("bob") {
		t.Error("other identities must have their own budget")
	}
}

func TestMessageLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := newTestLimiter(t, 1, 1)

	router := gin.New()
	router.POST("/chat", MessageLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/chat", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/chat", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("429 response should carry Retry-After")
	}
}

func TestUploadLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := newTestLimiter(t, 10, 1)

	router := gin.New()
	router.POST("/uploads", UploadLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/uploads", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first upload status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/uploads", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second upload status = %d, want 429", second.Code)
	}
}
