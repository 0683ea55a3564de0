package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/gin-gonic/gin"
	"github.com/go-pg/pg/v10"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcactor "github.com/okruhlystol/catalog/internal/actors/grpc"
	"github.com/okruhlystol/catalog/internal/actors/hasher"
	mongoactor "github.com/okruhlystol/catalog/internal/actors/mongo"
	"github.com/okruhlystol/catalog/internal/actors/postgres"
	"github.com/okruhlystol/catalog/internal/actors/pubsub/producer"
	"github.com/okruhlystol/catalog/internal/actors/recommender"
	"github.com/okruhlystol/catalog/internal/actors/rest"
	"github.com/okruhlystol/catalog/internal/config"
	"github.com/okruhlystol/catalog/internal/core/ports"
	"github.com/okruhlystol/catalog/internal/core/usecase"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}

var (
	grpcServerEndpoint = flag.String("grpc-server-endpoint", "localhost:50051", "gRPC server endpoint")
	httpServerEndpoint = flag.String("http-server-endpoint", "localhost:8080", "HTTP server endpoint")
)

const (
	healthInterval  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
)

// eventStore serves both the listing and the facets.
type eventStore interface {
	ports.EventRepository
	ports.FacetRepository
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	pgOpts, err := pg.ParseURL(cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("invalid POSTGRESQL_URL: %w", err)
	}
	db := pg.Connect(pgOpts)
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		log.WithError(err).Error("db does not appear to be reachable")
		return err
	}
	pgActor, err := postgres.NewPostgresDB(postgres.PostgresDBArgs{DB: db})
	if err != nil {
		return err
	}
	probes := map[string]grpcactor.Probe{"postgres": db.Ping}

	var events eventStore = pgActor
	if cfg.EventStore == config.EventStoreMongo {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
		if err != nil {
			return fmt.Errorf("error connecting to mongo: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		if err := client.Ping(ctx, nil); err != nil {
			log.WithError(err).Error("mongo does not appear to be reachable")
			return err
		}
		database := client.Database(cfg.MongoDatabase)
		mongoActor, err := mongoactor.NewMongoDB(mongoactor.MongoDBArgs{
			EventCollection:   database.Collection("events"),
			CounterCollection: database.Collection("counters"),
		})
		if err != nil {
			return err
		}
		if err := mongoActor.EnsureIndexes(ctx); err != nil {
			return err
		}
		events = mongoActor
		probes["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	}

	var sender ports.Sender = usecase.NewLocalDispatcher(usecase.NewPreferenceLearner(pgActor, events))
	if cfg.PubSubProjectID != "" {
		client, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
		if err != nil {
			return fmt.Errorf("error creating pubsub client: %w", err)
		}
		defer client.Close()
		topic := client.Topic(cfg.InteractionTopic)
		defer topic.Stop()
		if sender, err = producer.NewProducer(topic); err != nil {
			return err
		}
	}

	var routerOpts []rest.RouterOptArgs
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		routerOpts = append(routerOpts, rest.WithAuthQuota(rdb, cfg.AuthQuotaLimit, cfg.AuthQuotaWindow))
		probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := rest.NewRouter(rest.RouterArgs{
		Events: usecase.NewEventService(usecase.EventServiceArgs{Repository: events, MapsKey: cfg.MapsEmbedKey}),
		Facets: usecase.NewFacetService(usecase.FacetServiceArgs{Repository: events}),
		Users:  usecase.NewUserService(usecase.UserServiceArgs{Repository: pgActor, Hasher: hasher.NewArgon2id(nil)}),
		Favorites: usecase.NewFavoriteService(usecase.FavoriteServiceArgs{
			Favorites:   pgActor,
			Events:      events,
			Recommender: recommender.NewClient(recommender.ClientArgs{URL: cfg.RecommendationURL, Timeout: cfg.RecommendationTimeout}),
			MapsKey:     cfg.MapsEmbedKey,
		}),
		Preferences:    usecase.NewPreferenceService(usecase.PreferenceServiceArgs{Repository: pgActor, Sender: sender}),
		Tokens:         rest.NewTokens(rest.TokensArgs{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL}),
		Limiter:        rest.NewRateLimiter(ctx, rest.LimiterConfig{RPS: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst, IdleTTL: 10 * time.Minute}),
		TrustedProxies: cfg.TrustedProxies,
	}, routerOpts...)
	if err != nil {
		return err
	}
	httpServer := &http.Server{Addr: *httpServerEndpoint, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	lis, err := net.Listen("tcp", *grpcServerEndpoint)
	if err != nil {
		return err
	}
	grpcServer := grpc.NewServer()
	healthService := grpcactor.NewHealthService(grpcactor.HealthServiceArgs{Probes: probes})
	healthService.Register(grpcServer)
	reflection.Register(grpcServer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		healthService.Watch(gctx, healthInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	log.
		WithField("http-server-addr", *httpServerEndpoint).
		WithField("grpc-server-addr", *grpcServerEndpoint).
		WithField("event-store", cfg.EventStore).
		Info("servers up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stopping the server")

	return g.Wait()
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
