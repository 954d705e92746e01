package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"extract-store/internal/service"
)

// ingestClient identifica al cliente para la cuota: el subject del token si hubo auth,
// la IP si no. Los prefijos evitan que un subject choque con una IP.
func ingestClient(c *gin.Context) string {
	if subject, ok := IngestSubject(c); ok {
		return "sub:" + subject
	}
	return "ip:" + c.ClientIP()
}

// RateLimitMiddleware consume cuota de ingesta y responde 429 al agotarla.
// Si el limiter falla (redis caido) el request pasa.
func RateLimitMiddleware(limiter service.IngestRateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := ingestClient(c)
		decision, err := limiter.Allow(c.Request.Context(), client)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.String("client", client), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(decision.ResetAt)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func retryAfterSeconds(resetAt time.Time) int {
	secs := int(math.Ceil(time.Until(resetAt).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
