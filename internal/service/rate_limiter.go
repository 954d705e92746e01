package service

import (
	"context"
	"sync"
	"time"
)

// IngestWindow es la cuota de ingesta: Max requests por cliente en cada ventana fija de Size.
// Las ventanas estan alineadas al reloj (Truncate), igual en memoria y en redis.
type IngestWindow struct {
	Size time.Duration
	Max  int
}

// PerMinute arma la ventana de RATE_LIMIT_PER_MINUTE.
func PerMinute(max int) IngestWindow {
	return IngestWindow{Size: time.Minute, Max: max}
}

func (w IngestWindow) normalized() IngestWindow {
	if w.Size <= 0 {
		w.Size = time.Minute
	}
	if w.Max <= 0 {
		w.Max = 1
	}
	return w
}

func (w IngestWindow) start(now time.Time) time.Time {
	return now.UTC().Truncate(w.Size)
}

// decide traduce el conteo de la ventana (incluido este request) a una decision.
func (w IngestWindow) decide(count int64, start time.Time) QuotaDecision {
	remaining := int64(w.Max) - count
	if remaining < 0 {
		remaining = 0
	}
	return QuotaDecision{
		Allowed:   count <= int64(w.Max),
		Limit:     w.Max,
		Remaining: int(remaining),
		ResetAt:   start.Add(w.Size),
	}
}

// QuotaDecision es el resultado de consumir una unidad de cuota.
type QuotaDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// IngestRateLimiter consume cuota para un cliente. client se compara tal cual, sin normalizar:
// dos subjects que solo difieren en mayusculas son clientes distintos.
type IngestRateLimiter interface {
	Allow(ctx context.Context, client string) (QuotaDecision, error)
}

// MemoryRateLimiter cuenta por proceso. Al cambiar de ventana descarta todos los contadores.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	window  IngestWindow
	current time.Time
	counts  map[string]int64
	now     func() time.Time
}

func NewMemoryRateLimiter(window IngestWindow) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		window: window.normalized(),
		counts: make(map[string]int64),
		now:    time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, client string) (QuotaDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := l.window.start(l.now())
	if !start.Equal(l.current) {
		l.current = start
		l.counts = make(map[string]int64)
	}
	l.counts[client]++
	return l.window.decide(l.counts[client], start), nil
}
