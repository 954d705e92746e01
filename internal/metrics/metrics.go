package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes de una invocacion.
const (
	OutcomeStored       = "stored"
	OutcomeNoFields     = "no_fields"
	OutcomeMalformed    = "malformed"
	OutcomeStorageError = "storage_error"
)

// Metrics agrupa las metricas Prometheus del servicio.
type Metrics struct {
	Outcomes    *prometheus.CounterVec
	FieldsFound prometheus.Histogram
	PutLatency  prometheus.Histogram
}

// New registra las metricas en reg. Con nil usa el registry por defecto.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "extract_store_requests_total",
			Help: "Total extract requests by outcome",
		}, []string{"outcome"}),

		FieldsFound: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "extract_store_fields_found",
			Help:    "Number of record fields populated per accepted request",
			Buckets: []float64{1, 2, 3, 4},
		}),

		PutLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "extract_store_put_duration_seconds",
			Help:    "Duration of blob storage writes",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome suma una invocacion con el outcome dado.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome).Inc()
	}
}

// ObserveFieldsFound registra cuantos campos se encontraron.
func (m *Metrics) ObserveFieldsFound(n int) {
	if m != nil {
		m.FieldsFound.Observe(float64(n))
	}
}

// ObservePutLatency registra la duracion de una escritura.
func (m *Metrics) ObservePutLatency(d time.Duration) {
	if m != nil {
		m.PutLatency.Observe(d.Seconds())
	}
}
