package rest

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	r := newFixture().router(t, LimiterConfig{RPS: 0.001, Burst: 2, IdleTTL: time.Minute})

	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "", nil).Code)
	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "", nil).Code)

	w := serve(r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimiterIgnoresForwardedFor(t *testing.T) {
	r := newFixture().router(t, LimiterConfig{RPS: 0.001, Burst: 1, IdleTTL: time.Minute})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		header := http.Header{"X-Forwarded-For": []string{fmt.Sprintf("203.0.113.%d", i+1)}}
		codes = append(codes, serve(r, http.MethodGet, "/health", "", header).Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterTrustedProxy(t *testing.T) {
	f := newFixture()
	f.proxies = []string{"192.0.2.1"}
	r := f.router(t, LimiterConfig{RPS: 0.001, Burst: 1, IdleTTL: time.Minute})

	first := http.Header{"X-Forwarded-For": []string{"203.0.113.1"}}
	second := http.Header{"X-Forwarded-For": []string{"203.0.113.2"}}
	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "", first).Code)
	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "", second).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/health", "", first).Code)
}

func TestRateLimiterEvictsIdleBuckets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, LimiterConfig{RPS: 1, Burst: 1, IdleTTL: time.Minute})
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rl.nowFunc = func() time.Time { return now }

	rl.limiter("192.0.2.1")
	now = now.Add(30 * time.Second)
	rl.limiter("192.0.2.2")
	now = now.Add(45 * time.Second)
	rl.evict()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	require.Len(t, rl.buckets, 1)
	require.Contains(t, rl.buckets, "192.0.2.2")
}

func TestAuthQuota(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture()
	f.users.user = &model.User{ID: uuid.New(), Email: "jana@example.sk"}
	r := f.router(t, generous, WithAuthQuota(rdb, 2, time.Minute))
	body := `{"email":"jana@example.sk","password":"x"}`

	w := serve(r, http.MethodPost, "/register", body, nil)
	require.Equal(t, "1/2", w.Header().Get("X-Quota-Used"))
	w = serve(r, http.MethodPost, "/register", body, nil)
	require.Equal(t, "2/2", w.Header().Get("X-Quota-Used"))

	w = serve(r, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// each credential route has its own budget
	w = serve(r, http.MethodPost, "/login", body, nil)
	require.Equal(t, "1/2", w.Header().Get("X-Quota-Used"))

	ttl := mr.TTL("quota:/register:192.0.2.1")
	require.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute + time.Second)
	w = serve(r, http.MethodPost, "/register", body, nil)
	require.Equal(t, "1/2", w.Header().Get("X-Quota-Used"))
}

func TestAuthQuotaIgnoresForwardedFor(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture()
	r := f.router(t, generous, WithAuthQuota(rdb, 1, time.Minute))
	body := `{"email":"jana@example.sk","password":"x"}`

	w := serve(r, http.MethodPost, "/register", body, http.Header{"X-Forwarded-For": []string{"203.0.113.1"}})
	require.Equal(t, "1/1", w.Header().Get("X-Quota-Used"))
	w = serve(r, http.MethodPost, "/register", body, http.Header{"X-Forwarded-For": []string{"203.0.113.2"}})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, []string{"quota:/register:192.0.2.1"}, mr.Keys())
}

func TestAuthQuotaRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	f := newFixture()
	r := f.router(t, generous, WithAuthQuota(rdb, 1, time.Minute))

	w := serve(r, http.MethodPost, "/register", `{"email":"jana@example.sk","password":"x"}`, nil)
	require.NotEqual(t, http.StatusTooManyRequests, w.Code)
	require.Empty(t, w.Header().Get("X-Quota-Used"))
}

func TestQuotaWithoutKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.GET("/", Quota(rdb, QuotaRule{Limit: 0, Window: time.Minute, KeyFn: func(*gin.Context) string { return "" }}),
		func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, mr.Keys())
}

func TestRequestUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alice, bob := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		subject *uuid.UUID
		raw     string
		want    uuid.UUID
		wantErr error
	}{
		{name: "raw only", raw: alice.String(), want: alice},
		{name: "raw with spaces", raw: " " + alice.String() + " ", want: alice},
		{name: "subject only", subject: &alice, want: alice},
		{name: "matching", subject: &alice, raw: alice.String(), want: alice},
		{name: "mismatch", subject: &alice, raw: bob.String(), wantErr: errForbidden},
		{name: "missing", wantErr: errMissingUser},
		{name: "malformed", raw: "nope", wantErr: errInvalidUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(nil)
			if tt.subject != nil {
				c.Set(subjectKey, *tt.subject)
			}

			got, err := requestUser(c, tt.raw)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
