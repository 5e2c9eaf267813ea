package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
)

const (
	rateKeyPrefix   = "barbershop:rl"
	localLimiterCap = 10000
)

// tokenBucket refills continuously at rate tokens/second up to capacity.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(state[1])
local ts = tonumber(state[2])
if tokens == nil or ts == nil then
	tokens = capacity
	ts = now_ms
end

local elapsed = math.max(0, now_ms - ts)
tokens = math.min(capacity, tokens + elapsed * rate / 1000)

local allowed = 0
local retry = 0
if tokens >= 1 then
	allowed = 1
	tokens = tokens - 1
else
	retry = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'ts', now_ms)
redis.call('EXPIRE', key, ttl)
return {allowed, math.floor(tokens), retry}
`)

type RateLimiter struct {
	rdb   *redis.Client
	rps   float64
	burst int

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewRateLimiter uses Redis when rdb is non-nil and falls back to in-process
// limiters when it is nil or unreachable.
func NewRateLimiter(rdb *redis.Client, rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rdb:   rdb,
		rps:   rps,
		burst: burst,
		local: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateKey(c)

		allowed, remaining, retry, err := rl.allowRedis(c, key)
		if err != nil {
			if rl.rdb != nil {
				logging.FromContext(c).WithError(err).Warn("rate limiter falling back to local buckets")
			}
			allowed, remaining, retry = rl.allowLocal(key)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			secs := int(math.Ceil(retry.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.Abort(c, http.StatusTooManyRequests, httperr.CodeRateLimited, "Çok fazla istek, lütfen biraz sonra tekrar deneyin")
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allowRedis(c *gin.Context, key string) (bool, int, time.Duration, error) {
	if rl.rdb == nil {
		return false, 0, 0, redis.Nil
	}
	ttl := int64(math.Ceil(float64(rl.burst)/rl.rps)) + 1
	res, err := tokenBucket.Run(
		c.Request.Context(),
		rl.rdb,
		[]string{rateKeyPrefix + ":" + key},
		time.Now().UnixMilli(), rl.burst, rl.rps, ttl,
	).Int64Slice()
	if err != nil {
		return false, 0, 0, err
	}
	if len(res) != 3 {
		return false, 0, 0, redis.Nil
	}
	return res[0] == 1, int(res[1]), time.Duration(res[2]) * time.Millisecond, nil
}

func (rl *RateLimiter) allowLocal(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	lim, ok := rl.local[key]
	if !ok {
		if len(rl.local) >= localLimiterCap {
			rl.local = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rate.Limit(rl.rps), rl.burst)
		rl.local[key] = lim
	}
	rl.mu.Unlock()

	now := time.Now()
	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}
	return true, int(lim.TokensAt(now)), 0
}

// rateKey buckets authenticated callers by user and everyone else by IP.
func rateKey(c *gin.Context) string {
	if id := c.GetString(ContextUserID); id != "" {
		return "user:" + id
	}
	return "ip:" + c.ClientIP()
}
