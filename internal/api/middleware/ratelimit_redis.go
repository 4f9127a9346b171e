package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

// WindowCounter увеличивает счётчик ключа в фиксированном окне и возвращает новое значение
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter счётчик фиксированного окна в Redis, общий для всех инстансов
type RedisCounter struct {
	rdb redis.Scripter
}

func NewRedisCounter(rdb redis.Scripter) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = time.Minute.Milliseconds()
	}

	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// WindowRateLimiter ограничитель limit запросов за window на IP
type WindowRateLimiter struct {
	counter  WindowCounter
	limit    int64
	window   time.Duration
	prefix   string
	failOpen bool
	ips      *ClientIPResolver
	log      Logger
}

// NewWindowRateLimiter создает ограничитель фиксированного окна
// При failOpen ошибки счётчика пропускают запрос, иначе отвечают 503
func NewWindowRateLimiter(counter WindowCounter, limit int, window time.Duration, prefix string, failOpen bool, ips *ClientIPResolver, log Logger) *WindowRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &WindowRateLimiter{
		counter:  counter,
		limit:    int64(limit),
		window:   window,
		prefix:   prefix,
		failOpen: failOpen,
		ips:      ips,
		log:      log,
	}
}

func (rl *WindowRateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rl.ips.ClientIP(r)
			count, err := rl.counter.Incr(r.Context(), rl.prefix+":"+ip, rl.window)
			if err != nil {
				rl.log.Error("RedisRateLimit: counter error ip=%s: %v", ip, err)
				if rl.failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgRateLimiterOffline)
				return
			}

			if count > rl.limit {
				rl.log.Warn("RedisRateLimit: limit exceeded ip=%s count=%d", ip, count)
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
