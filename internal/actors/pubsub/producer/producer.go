package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/pubsub"
	"github.com/okruhlystol/catalog/internal/core/model"
)

// NewProducer creates a new producer.
func NewProducer(topic *pubsub.Topic) (*Producer, error) {
	if topic == nil {
		return nil, errors.New("topic is nil")
	}
	return &Producer{topic: topic}, nil
}

// Producer is the pubsub producer of interaction events.
type Producer struct {
	topic *pubsub.Topic
}

// Send publishes the event as JSON and blocks until the server acknowledged it.
func (p *Producer) Send(ctx context.Context, event model.InteractionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling interaction event: %w", err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"action_type": event.ActionType,
			"event_id":    strconv.FormatInt(event.EventID, 10),
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("error publishing interaction event: %w", err)
	}
	return nil
}
