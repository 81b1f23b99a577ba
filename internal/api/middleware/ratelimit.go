package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/nitk/memory-vault/internal/api/shared/errors"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/ratelimit"
)

const (
	RATE_LIMIT_REMAINING_HEADER = "X-RateLimit-Remaining"
	RETRY_AFTER_HEADER          = "Retry-After"
)

// RateLimit returns a gin middleware that spends one request of the caller's budget.
// Authenticated callers are keyed by subject, others by client IP. Limiter
// failures let the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c)

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable",
				zap.Error(err),
				zap.String("request_id", c.GetString(REQUEST_ID_KEY)),
			)
			c.Next()
			return
		}

		c.Header(RATE_LIMIT_REMAINING_HEADER, strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header(RETRY_AFTER_HEADER, strconv.Itoa(retryAfter))

			logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("request_id", c.GetString(REQUEST_ID_KEY)),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.ErrorResponse{
				Error: apierrors.NewTooManyRequestsError("Too many requests", fmt.Sprintf("retry after %ds", retryAfter)),
			})
			return
		}

		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if subject := c.GetString(AUTH_SUBJECT_KEY); subject != "" {
		return "sub:" + subject
	}
	return "ip:" + c.ClientIP()
}
