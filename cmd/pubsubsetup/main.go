package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/okruhlystol/catalog/internal/config"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

var layout = flag.String("layout", "",
	"extra topics to create, as TOPIC1:SUBSCRIPTION11:SUBSCRIPTION12,TOPIC2:SUBSCRIPTION21. "+
		"The interaction topic and subscription from the environment are always created.")

// plan maps topics to the subscriptions to create on them.
type plan map[string][]string

func parseLayout(raw string) (plan, error) {
	p := plan{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.ReplaceAll(item, " ", "")
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if parts[0] == "" {
			return nil, fmt.Errorf("missing topic in %q", item)
		}
		for _, sub := range parts[1:] {
			if sub == "" {
				return nil, fmt.Errorf("empty subscription in %q", item)
			}
		}
		p[parts[0]] = append(p[parts[0]], parts[1:]...)
	}
	return p, nil
}

func alreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.PubSubProjectID == "" {
		return errors.New("PUBSUB_PROJECT_ID is required")
	}
	p, err := parseLayout(*layout)
	if err != nil {
		return err
	}
	p[cfg.InteractionTopic] = append(p[cfg.InteractionTopic], cfg.InteractionSubscription)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
	if err != nil {
		return fmt.Errorf("unable to create client to project %q: %w", cfg.PubSubProjectID, err)
	}
	defer client.Close()

	for topicID, subscriptions := range p {
		topic, err := client.CreateTopic(ctx, topicID)
		if alreadyExists(err) {
			topic = client.Topic(topicID)
		} else if err != nil {
			return fmt.Errorf("unable to create topic %s: %w", topicID, err)
		}
		for _, subscriptionID := range subscriptions {
			_, err := client.CreateSubscription(ctx, subscriptionID, pubsub.SubscriptionConfig{Topic: topic})
			if err != nil && !alreadyExists(err) {
				return fmt.Errorf("unable to create subscription %s on topic %s: %w", subscriptionID, topicID, err)
			}
			log.
				WithField("project", cfg.PubSubProjectID).
				WithField("topic", topicID).
				WithField("subscription", subscriptionID).
				Info("subscription ready")
		}
	}
	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.WithError(err).Fatal("pubsub setup failed")
	}
}
