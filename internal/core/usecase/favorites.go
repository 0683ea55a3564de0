package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
)

// FavoriteServiceArgs contains the mandatory arguments for the FavoriteService.
type FavoriteServiceArgs struct {
	Favorites   ports.FavoriteRepository
	Events      ports.EventRepository
	Recommender ports.Recommender

	// MapsKey is the API key embedded in generated map URLs.
	MapsKey string
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(args FavoriteServiceArgs) *FavoriteService {
	return &FavoriteService{
		favorites:   args.Favorites,
		events:      args.Events,
		recommender: args.Recommender,
		mapper:      mapper{mapsKey: args.MapsKey},
	}
}

// FavoriteService serves the personalised event lists.
type FavoriteService struct {
	favorites   ports.FavoriteRepository
	events      ports.EventRepository
	recommender ports.Recommender
	mapper      mapper
}

// AddFavorite marks an event as favorite of a user. Repeating it is harmless.
func (s *FavoriteService) AddFavorite(ctx context.Context, args model.FavoriteArgs) error {
	if err := validFavorite(args); err != nil {
		return err
	}
	if _, err := s.events.GetEvent(ctx, args.EventID); err != nil {
		return fmt.Errorf("error reading event %d: %w", args.EventID, err)
	}
	if err := s.favorites.AddFavorite(ctx, args.UserID, args.EventID); err != nil {
		return fmt.Errorf("error adding favorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes an event from the favorites of a user.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, args model.FavoriteArgs) error {
	if err := validFavorite(args); err != nil {
		return err
	}
	if err := s.favorites.RemoveFavorite(ctx, args.UserID, args.EventID); err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	return nil
}

// Favorites lists the favorite events of a user, most recent first.
func (s *FavoriteService) Favorites(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	ids, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	return s.eventsInOrder(ctx, ids)
}

// Recommendations asks the recommender for event ids and returns those events in the
// recommended order. Ids that no longer exist are skipped.
func (s *FavoriteService) Recommendations(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	ids, err := s.recommender.Recommend(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching recommendations: %w", err)
	}
	return s.eventsInOrder(ctx, ids)
}

// eventsInOrder loads the events with the given ids and returns them in the order of ids.
// Unknown and repeated ids are skipped.
func (s *FavoriteService) eventsInOrder(ctx context.Context, ids []int64) ([]model.Event, error) {
	if len(ids) == 0 {
		return []model.Event{}, nil
	}

	records, err := s.events.GetEventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error loading events: %w", err)
	}
	byID := make(map[int64]model.EventRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	out := make([]model.Event, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, s.mapper.toEvent(r, listShortText))
			delete(byID, id)
		}
	}
	return out, nil
}

func validFavorite(args model.FavoriteArgs) error {
	if args.UserID == uuid.Nil || args.EventID <= 0 {
		return model.NewValidationError("user_id and event_id are required")
	}
	return nil
}
