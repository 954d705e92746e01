package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"extract-store/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas base.
// tokens nil deja POST /records sin autenticacion, limiter nil sin limite y
// metricsHandler nil omite /metrics.
func NewRouter(
	logger *zap.Logger,
	recordH *RecordHandler,
	tokens *service.TokenService,
	limiter service.IngestRateLimiter,
	metricsHandler http.Handler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	records := r.Group("/records")
	if tokens != nil {
		records.Use(BearerAuthMiddleware(tokens))
	}
	if limiter != nil {
		records.Use(RateLimitMiddleware(limiter, logger))
	}
	records.POST("", recordH.CreateRecord)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
