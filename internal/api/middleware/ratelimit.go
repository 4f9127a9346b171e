package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgRateLimited        = "リクエストが多すぎます。しばらくしてから再度お試しください"
	msgRateLimiterOffline = "現在リクエストを処理できません"

	idleLimiterTTL    = 10 * time.Minute
	idleSweepInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничитель запросов по IP в памяти процесса
type RateLimiter struct {
	rps   rate.Limit
	burst int
	ips   *ClientIPResolver
	log   Logger

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter создает ограничитель rps запросов в секунду с запасом burst
// ips nil означает, что ключом служит адрес соединения
func NewRateLimiter(rps float64, burst int, ips *ClientIPResolver, log Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		ips:      ips,
		log:      log,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Middleware отклоняет запросы сверх лимита с 429
func (rl *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rl.ips.ClientIP(r)
			if !rl.allow(ip) {
				rl.log.Warn("RateLimit: limit exceeded ip=%s path=%s", ip, r.URL.Path)
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	if now.Sub(rl.lastSweep) >= idleSweepInterval {
		rl.evictIdle(now)
	}
	return v.limiter.AllowN(now, 1)
}

// evictIdle удаляет ограничители, не использованные дольше idleLimiterTTL
// Вызывается под rl.mu не чаще раза в idleSweepInterval
func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.lastSweep = now
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idleLimiterTTL {
			delete(rl.visitors, key)
		}
	}
}
