package ports

import (
	"context"

	"github.com/okruhlystol/catalog/internal/core/model"
)

// InteractionEventHandler handles incoming InteractionEvents.
type InteractionEventHandler interface {
	// Handle will receive an incoming interaction event and handle it.
	Handle(ctx context.Context, event model.InteractionEvent) error
}
