package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
)

const (
	cacheKeyPrefix = "barbershop:cache"
	maxCachedBody  = 1 << 20

	scopeGlobal = "global"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if w.buf.Len() < maxCachedBody {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// ResponseCache serves anonymous GET requests from Redis. Authenticated
// requests and non-200 responses are never cached. A nil client or zero ttl
// disables it.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || ttl <= 0 || c.Request.Method != http.MethodGet || TokenFromRequest(c) != "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cacheKey(c)

		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
			var hit cachedResponse
			if json.Unmarshal(raw, &hit) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(hit.Status, hit.ContentType, hit.Body)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			logging.FromContext(c).WithError(err).Warn("response cache unavailable")
			c.Next()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Header("X-Cache", "MISS")

		c.Next()

		if cw.Status() != http.StatusOK || cw.buf.Len() >= maxCachedBody {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			Status:      cw.Status(),
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.Bytes(),
		})
		if err != nil {
			return
		}
		setKey := scopeKey(cacheScope(c.Request.URL.Path))
		_, err = rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, payload, ttl)
			p.SAdd(ctx, setKey, key)
			p.Expire(ctx, setKey, ttl)
			return nil
		})
		if err != nil {
			logging.FromContext(c).WithError(err).Warn("response cache write failed")
		}
	}
}

// CacheInvalidation drops cached reads after a successful write. Writes under
// /api/shops/:id clear that shop's entries; every write clears the listings.
func CacheInvalidation(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if rdb == nil || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		scopes := []string{scopeGlobal}
		if s := cacheScope(c.Request.URL.Path); s != scopeGlobal {
			scopes = append(scopes, s)
		}
		if err := invalidate(c.Request.Context(), rdb, scopes...); err != nil {
			logging.FromContext(c).WithError(err).Warn("response cache invalidation failed")
		}
	}
}

func invalidate(ctx context.Context, rdb *redis.Client, scopes ...string) error {
	for _, scope := range scopes {
		setKey := scopeKey(scope)
		keys, err := rdb.SMembers(ctx, setKey).Result()
		if err != nil {
			return err
		}
		if err := rdb.Del(ctx, append(keys, setKey)...).Err(); err != nil {
			return err
		}
	}
	return nil
}

// cacheScope is "shop:<id>" for paths under /api/shops/<id> and global otherwise.
func cacheScope(path string) string {
	rest, ok := strings.CutPrefix(path, "/api/shops/")
	if !ok {
		return scopeGlobal
	}
	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return scopeGlobal
	}
	return "shop:" + id
}

func scopeKey(scope string) string {
	return cacheKeyPrefix + ":scope:" + scope
}

func cacheKey(c *gin.Context) string {
	sum := sha1.Sum([]byte(c.Request.URL.Path + "?" + c.Request.URL.RawQuery))
	return cacheKeyPrefix + ":" + hex.EncodeToString(sum[:])
}
