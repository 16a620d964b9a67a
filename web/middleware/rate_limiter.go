package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	MessagesPerMinute int           // Max messages per identity per minute
	UploadsPerHour    int           // Max file uploads per identity per hour
	CleanupInterval   time.Duration // How often to clean up old entries
}

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket
func NewTokenBucket(maxTokens float64, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow checks if a request can proceed and consumes a token if so
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()

	tb.tokens = min(tb.maxTokens, tb.tokens+(elapsed*tb.refillRate))
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Remaining returns the number of tokens remaining
func (tb *TokenBucket) Remaining() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tokens := min(tb.maxTokens, tb.tokens+(elapsed*tb.refillRate))
	return int(tokens)
}

// UserRateLimiter manages rate limits per resolved identity. Guests all
// share the anonymous identity, which is deliberate: unauthenticated
// traffic gets one collective budget.
type UserRateLimiter struct {
	config        RateLimiterConfig
	messageLimits map[string]*TokenBucket
	uploadLimits  map[string]*TokenBucket
	mu            sync.RWMutex
	logger        *zap.Logger
	stopCleanup   chan struct{}
}

// NewUserRateLimiter creates a new identity-based rate limiter
func NewUserRateLimiter(config RateLimiterConfig, logger *zap.Logger) *UserRateLimiter {
	limiter := &UserRateLimiter{
		config:        config,
		messageLimits: make(map[string]*TokenBucket),
		uploadLimits:  make(map[string]*TokenBucket),
		logger:        logger,
		stopCleanup:   make(chan struct{}),
	}

	go limiter.cleanupRoutine()

	return limiter
}

func (url *UserRateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(url.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			url.cleanup()
		case <-url.stopCleanup:
			return
		}
	}
}

// cleanup removes rate limiters when the maps grow past a rough bound.
func (url *UserRateLimiter) cleanup() {
	url.mu.Lock()
	defer url.mu.Unlock()

	if len(url.messageLimits) > 1000 {
		url.logger.Info("Cleaning up rate limiter cache", zap.Int("message_limiters", len(url.messageLimits)))
		url.messageLimits = make(map[string]*TokenBucket)
		url.uploadLimits = make(map[string]*TokenBucket)
	}
}

// Stop stops the cleanup routine
func (url *UserRateLimiter) Stop() {
	close(url.stopCleanup)
}

// AllowMessage checks if a message can be sent for the given identity
func (url *UserRateLimiter) AllowMessage(userID string) bool {
	url.mu.Lock()
	bucket, exists := url.messageLimits[userID]
	if !exists {
		refillRate := float64(url.config.MessagesPerMinute) / 60.0
		bucket = NewTokenBucket(float64(url.config.MessagesPerMinute), refillRate)
		url.messageLimits[userID] = bucket
	}
	url.mu.Unlock()

	return bucket.Allow()
}

// AllowUpload checks if a file upload can proceed for the given identity
func (url *UserRateLimiter) AllowUpload(userID string) bool {
	url.mu.Lock()
	bucket, exists := url.uploadLimits[userID]
	if !exists {
		refillRate := float64(url.config.UploadsPerHour) / 3600.0
		bucket = NewTokenBucket(float64(url.config.UploadsPerHour), refillRate)
		url.uploadLimits[userID] = bucket
	}
	url.mu.Unlock()

	return bucket.Allow()
}

// MessageLimitMiddleware rejects over-limit chat sends with 429.
func MessageLimitMiddleware(limiter *UserRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if !limiter.AllowMessage(userID) {
			c.Header("Retry-After", strconv.Itoa(60))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many messages. Please slow down.",
			})
			return
		}
		c.Next()
	}
}

// UploadLimitMiddleware rejects over-limit uploads with 429.
func UploadLimitMiddleware(limiter *UserRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if !limiter.AllowUpload(userID) {
			c.Header("Retry-After", strconv.Itoa(3600))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Upload limit reached. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
