package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"extract-store/internal/service"
)

// RecordHandler mantiene dependencias para el endpoint de extraccion.
type RecordHandler struct {
	logger       *zap.Logger
	extractServ  *service.ExtractService
	maxBodyBytes int64
	now          func() time.Time
}

// NewRecordHandler crea una instancia de RecordHandler con dependencias necesarias.
func NewRecordHandler(logger *zap.Logger, extractServ *service.ExtractService, maxBodyBytes int64) *RecordHandler {
	return &RecordHandler{
		logger:       logger,
		extractServ:  extractServ,
		maxBodyBytes: maxBodyBytes,
		now:          time.Now,
	}
}

// CreateRecord maneja POST /records.
// El timestamp del request es el momento de recepcion, en milisegundos epoch.
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	receivedAt := h.now().UTC().UnixMilli()

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		h.logger.Warn("read request body failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.extractServ.Handle(c.Request.Context(), body, receivedAt)
	if err != nil {
		h.logger.Error("store record failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store record"})
		return
	}

	for name, value := range resp.Headers {
		c.Header(name, value)
	}
	c.Data(resp.StatusCode, resp.ContentType(), []byte(resp.Body))
}
