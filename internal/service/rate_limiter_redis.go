package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// La clave vence al final de su ventana, asi que no hace falta limpiar contadores viejos.
const redisQuotaScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIREAT", KEYS[1], ARGV[1])
end
return count
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisRateLimiter comparte la cuota entre todas las instancias de la API.
type RedisRateLimiter struct {
	client redisEvaler
	window IngestWindow
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, window IngestWindow) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		window: window.normalized(),
		now:    time.Now,
	}
}

// quotaKey identifica el contador de client en la ventana que empieza en start.
func quotaKey(client string, start time.Time) string {
	return "ingest:quota:" + strconv.FormatInt(start.Unix(), 10) + ":" + client
}

// Allow devuelve el error de redis sin decidir; el llamador elige si deja pasar.
func (l *RedisRateLimiter) Allow(ctx context.Context, client string) (QuotaDecision, error) {
	start := l.window.start(l.now())
	resetAt := start.Add(l.window.Size)
	count, err := l.client.Eval(ctx, redisQuotaScript, []string{quotaKey(client, start)}, resetAt.UnixMilli()).Int64()
	if err != nil {
		return QuotaDecision{}, fmt.Errorf("redis quota: %w", err)
	}
	return l.window.decide(count, start), nil
}
