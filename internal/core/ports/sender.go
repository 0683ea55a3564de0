package ports

import (
	"context"

	"github.com/okruhlystol/catalog/internal/core/model"
)

// Sender is the port for publishing outbound interaction events.
type Sender interface {
	// Send sends interaction-event data.
	Send(ctx context.Context, event model.InteractionEvent) error
}
