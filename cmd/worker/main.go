package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcactor "github.com/okruhlystol/catalog/internal/actors/grpc"
	mongoactor "github.com/okruhlystol/catalog/internal/actors/mongo"
	"github.com/okruhlystol/catalog/internal/actors/postgres"
	"github.com/okruhlystol/catalog/internal/actors/pubsub/subscriber"
	"github.com/okruhlystol/catalog/internal/config"
	"github.com/okruhlystol/catalog/internal/core/ports"
	"github.com/okruhlystol/catalog/internal/core/usecase"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}

var grpcServerEndpoint = flag.String("grpc-server-endpoint", "localhost:50052", "gRPC server endpoint")

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	if cfg.PubSubProjectID == "" {
		return errors.New("PUBSUB_PROJECT_ID is required by the worker")
	}

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

	// the learner only needs to look events up, wherever they live
	var events ports.EventRepository = pgActor
	if cfg.EventStore == config.EventStoreMongo {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
		if err != nil {
			return fmt.Errorf("error connecting to mongo: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		database := client.Database(cfg.MongoDatabase)
		if events, err = mongoactor.NewMongoDB(mongoactor.MongoDBArgs{
			EventCollection:   database.Collection("events"),
			CounterCollection: database.Collection("counters"),
		}); err != nil {
			return err
		}
		probes["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
	if err != nil {
		return fmt.Errorf("error creating pubsub client: %w", err)
	}
	defer client.Close()
	consumer, err := subscriber.NewSubscriber(subscriber.SubscriberArgs{
		Subscription: client.Subscription(cfg.InteractionSubscription),
		Handler:      usecase.NewPreferenceLearner(pgActor, events),
	})
	if err != nil {
		return err
	}

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
		return consumer.Consume(gctx)
	})
	g.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		healthService.Watch(gctx, 10*time.Second)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		grpcServer.GracefulStop()
		return nil
	})

	log.
		WithField("grpc-server-addr", *grpcServerEndpoint).
		WithField("subscription", cfg.InteractionSubscription).
		Info("worker up. listening to SIGTERM, SIGINT, SIGQUIT for stopping")

	return g.Wait()
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.WithError(err).Fatal("worker stopped")
	}
}
