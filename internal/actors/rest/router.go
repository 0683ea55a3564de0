package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RouterArgs contains the mandatory arguments for the HTTP router.
type RouterArgs struct {
	Events      EventUsecase
	Facets      FacetUsecase
	Users       UserUsecase
	Favorites   FavoriteUsecase
	Preferences PreferenceUsecase

	// Tokens issues login tokens and verifies bearer tokens.
	Tokens *Tokens

	// Limiter throttles every route per client.
	Limiter *RateLimiter

	// TrustedProxies are the peers allowed to set X-Forwarded-For. Nil trusts none, so the
	// limiter and the quota key on the connection address.
	TrustedProxies []string
}

// RouterOptArgs are the optional arguments for building the router.
type RouterOptArgs = func(*handlers)

// WithAuthQuota enables the redis backed quota on the credential routes.
func WithAuthQuota(rdb *redis.Client, limit int64, window time.Duration) RouterOptArgs {
	return func(h *handlers) {
		h.quota = Quota(rdb, QuotaRule{Limit: limit, Window: window, KeyFn: authQuotaKey})
	}
}

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) RouterOptArgs {
	return func(h *handlers) {
		h.nowFunc = nowFunc
	}
}

type handlers struct {
	events      EventUsecase
	facets      FacetUsecase
	users       UserUsecase
	favorites   FavoriteUsecase
	preferences PreferenceUsecase
	tokens      *Tokens
	quota       gin.HandlerFunc
	nowFunc     func() time.Time
}

// NewRouter wires every route of the catalog API.
func NewRouter(args RouterArgs, optArgs ...RouterOptArgs) (*gin.Engine, error) {
	if args.Events == nil || args.Facets == nil || args.Users == nil || args.Favorites == nil || args.Preferences == nil {
		return nil, errors.New("every usecase is required")
	}
	if args.Tokens == nil || args.Limiter == nil {
		return nil, errors.New("tokens and limiter are required")
	}
	h := &handlers{
		events:      args.Events,
		facets:      args.Facets,
		users:       args.Users,
		favorites:   args.Favorites,
		preferences: args.Preferences,
		tokens:      args.Tokens,
		quota:       func(c *gin.Context) { c.Next() },
		nowFunc:     time.Now,
	}
	for _, opt := range optArgs {
		opt(h)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(args.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), requestLogger(), args.Limiter.Middleware())

	r.GET("/health", h.health)

	r.GET("/events", h.listEvents)
	r.GET("/events/:id", h.getEvent)
	r.POST("/events", h.createEvent)

	r.GET("/facets", h.allFacets)
	r.GET("/facets/years", h.years)
	r.GET("/facets/months", h.months)
	r.GET("/facets/categories", h.categories)
	r.GET("/facets/locations", h.locations)

	r.POST("/register", h.quota, h.register)
	r.POST("/login", h.quota, h.login)

	personal := r.Group("/", OptionalAuth(args.Tokens))
	personal.GET("/favorites", h.listFavorites)
	personal.POST("/favorites", h.addFavorite)
	personal.DELETE("/favorites", h.removeFavorite)
	personal.GET("/recommendations", h.recommendations)
	personal.GET("/preferences", h.getPreferences)
	personal.POST("/preferences", h.savePreferences)
	personal.POST("/interactions", h.recordInteraction)

	return r, nil
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": h.nowFunc().UTC().Format(time.RFC3339)})
}
