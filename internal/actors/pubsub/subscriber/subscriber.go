package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"

	log "github.com/sirupsen/logrus"
)

// SubscriberArgs contain the mandatory arguments to build a subscriber.
type SubscriberArgs struct {
	// Subscription is a pubsub subscription
	Subscription *pubsub.Subscription

	// Handler receives every decoded interaction event.
	Handler ports.InteractionEventHandler
}

// Subscriber is a pubsub async subscriber
type Subscriber struct {
	subscription *pubsub.Subscription
	handler      ports.InteractionEventHandler
}

// NewSubscriber creates a subscriber
func NewSubscriber(args SubscriberArgs) (*Subscriber, error) {
	if args.Subscription == nil || args.Handler == nil {
		return nil, errors.New("subscription and handler are required")
	}
	return &Subscriber{
		subscription: args.Subscription,
		handler:      args.Handler,
	}, nil
}

// ErrMalformed marks a message that can never be handled.
var ErrMalformed = errors.New("malformed interaction message")

// Consume starts the subscriber. This is a blocking method and should be started in its own go-routine.
// The way to terminate the method is to cancel the context in input.
func (s *Subscriber) Consume(ctx context.Context) error {
	if err := s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		err := s.process(ctx, msg)
		switch {
		case err == nil:
			msg.Ack()
		case errors.Is(err, ErrMalformed):
			// redelivery would fail the same way
			log.WithError(err).WithField("message_id", msg.ID).Warn("dropping interaction message")
			msg.Ack()
		default:
			log.WithError(err).WithField("message_id", msg.ID).Error("error in interaction event handler")
			msg.Nack()
		}
	}); err != nil {
		return fmt.Errorf("error receiving messages from subscription: %w", err)
	}
	return nil
}

func (s *Subscriber) process(ctx context.Context, msg *pubsub.Message) error {
	event, err := decodeInteractionEvent(msg)
	if err != nil {
		return err
	}
	return s.handler.Handle(ctx, *event)
}

func decodeInteractionEvent(msg *pubsub.Message) (*model.InteractionEvent, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrMalformed)
	}
	event := new(model.InteractionEvent)
	if err := json.Unmarshal(msg.Data, event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if event.UserID == uuid.Nil || event.EventID <= 0 || event.ActionType == "" {
		return nil, fmt.Errorf("%w: missing user_id, event_id or action_type", ErrMalformed)
	}
	event.ID = msg.ID
	return event, nil
}
