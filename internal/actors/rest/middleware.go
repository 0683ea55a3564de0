package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const subjectKey = "catalog.subject"

// LimiterConfig configures the per client token buckets.
type LimiterConfig struct {
	// RPS is the steady refill rate of each bucket.
	RPS float64

	// Burst is the capacity of each bucket.
	Burst int

	// IdleTTL is how long an unused bucket is kept.
	IdleTTL time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one in-memory token bucket per client key.
type RateLimiter struct {
	conf    LimiterConfig
	nowFunc func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewRateLimiter creates a RateLimiter whose idle buckets are evicted until ctx is done.
func NewRateLimiter(ctx context.Context, conf LimiterConfig) *RateLimiter {
	rl := &RateLimiter{conf: conf, nowFunc: time.Now, buckets: map[string]*bucket{}}
	interval := conf.IdleTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.evict()
			}
		}
	}()
	return rl
}

func (rl *RateLimiter) evict() {
	now := rl.nowFunc()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.conf.IdleTTL {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	now := rl.nowFunc()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}
	lim := rate.NewLimiter(rate.Limit(rl.conf.RPS), rl.conf.Burst)
	rl.buckets[key] = &bucket{limiter: lim, lastSeen: now}
	return lim
}

// Middleware rejects a client with 429 once its bucket is empty. Clients are keyed by IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// QuotaRule is a fixed window budget of requests per key.
type QuotaRule struct {
	Limit  int64
	Window time.Duration
	KeyFn  func(*gin.Context) string
}

// Quota counts requests per key in redis and rejects with 429 above the limit.
// When redis is unreachable the request is let through.
func Quota(rdb *redis.Client, rule QuotaRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rule.KeyFn(c)
		if key == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("quota check skipped")
			c.Next()
			return
		}
		if n == 1 {
			if err := rdb.Expire(ctx, key, rule.Window).Err(); err != nil {
				log.WithError(err).WithField("key", key).Warn("error setting quota window")
			}
		}
		if n > rule.Limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "quota exceeded"})
			return
		}
		c.Header("X-Quota-Used", strconv.FormatInt(n, 10)+"/"+strconv.FormatInt(rule.Limit, 10))
		c.Next()
	}
}

// authQuotaKey buckets credential attempts per client IP and route.
func authQuotaKey(c *gin.Context) string {
	return "quota:" + c.FullPath() + ":" + c.ClientIP()
}

// OptionalAuth verifies a bearer token when one is sent and remembers its subject.
// Requests without an Authorization header pass through untouched.
func OptionalAuth(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		subject, err := tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(subjectKey, subject)
		c.Next()
	}
}

// requestUser resolves the user a request acts for. An explicit user_id must match
// the token subject when a token was presented; without user_id the subject is used.
func requestUser(c *gin.Context, raw string) (uuid.UUID, error) {
	subject, authenticated := c.Get(subjectKey)
	if strings.TrimSpace(raw) == "" {
		if authenticated {
			return subject.(uuid.UUID), nil
		}
		return uuid.Nil, errMissingUser
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errInvalidUser
	}
	if authenticated && subject.(uuid.UUID) != id {
		return uuid.Nil, errForbidden
	}
	return id, nil
}

// requestLogger logs one line per request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("latency", time.Since(start).String()).
			Debug("request served")
	}
}
