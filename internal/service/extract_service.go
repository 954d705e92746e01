package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"extract-store/internal/domain"
	"extract-store/internal/metrics"
	"extract-store/internal/repository"
)

const (
	MsgNoFields         = "Request did not contain any name or zip code fields"
	MsgMalformedPayload = "Request body is not a valid JSON document"
)

// ExtractService procesa una invocacion: extrae el registro y lo guarda en el bucket.
type ExtractService struct {
	logger  *zap.Logger
	blobs   repository.BlobRepository
	bucket  string
	keyer   StorageKeyer
	metrics *metrics.Metrics
}

func NewExtractService(
	logger *zap.Logger,
	blobs repository.BlobRepository,
	bucket string,
	keyer StorageKeyer,
	m *metrics.Metrics,
) *ExtractService {
	return &ExtractService{
		logger:  logger,
		blobs:   blobs,
		bucket:  bucket,
		keyer:   keyer,
		metrics: m,
	}
}

// Handle parsea el body, extrae el registro y hace exactamente una escritura si encontro algo.
// requestTimeEpochMillis es el momento de recepcion en milisegundos epoch.
// Un error devuelto es una falla de infraestructura; los problemas del request vuelven como 400.
func (s *ExtractService) Handle(ctx context.Context, body []byte, requestTimeEpochMillis int64) (domain.Response, error) {
	payload, err := ParsePayload(body)
	if err != nil {
		s.logger.Warn("rejected request", zap.String("reason", "malformed payload"), zap.Error(err))
		s.metrics.IncrementOutcome(metrics.OutcomeMalformed)
		return domain.BadRequest(MsgMalformedPayload), nil
	}

	record := Extract(payload)
	if record.IsEmpty() {
		s.logger.Warn("rejected request", zap.String("reason", "no fields"))
		s.metrics.IncrementOutcome(metrics.OutcomeNoFields)
		return domain.BadRequest(MsgNoFields), nil
	}

	data, err := record.Marshal()
	if err != nil {
		return domain.Response{}, fmt.Errorf("marshal record: %w", err)
	}

	key := s.keyer.Derive(requestTimeEpochMillis)
	start := time.Now()
	err = s.blobs.Put(ctx, data, s.bucket, key)
	s.metrics.ObservePutLatency(time.Since(start))
	if err != nil {
		s.metrics.IncrementOutcome(metrics.OutcomeStorageError)
		return domain.Response{}, fmt.Errorf("storage put %s/%s: %w", s.bucket, key, err)
	}

	s.metrics.IncrementOutcome(metrics.OutcomeStored)
	s.metrics.ObserveFieldsFound(record.Populated())
	s.logger.Info("record stored",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("fields", record.Populated()),
		zap.Bool("complete", record.IsComplete()),
	)
	return domain.Success(data), nil
}
