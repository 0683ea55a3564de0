package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/predicate"
)

// EventRepository is the interface for the event store.
type EventRepository interface {
	// QueryEvents counts the events matching the predicate and returns the window of them
	// ordered by start date, creation time and id, all descending. Count and rows are read
	// from the same snapshot; on error nothing is returned.
	QueryEvents(ctx context.Context, pred predicate.Predicate, window Window) (*EventRows, error)

	// GetEvent returns the event with the given id or model.ErrNotFound.
	GetEvent(ctx context.Context, id int64) (*model.EventRecord, error)

	// GetEventsByIDs returns the existing events among ids, in no particular order.
	GetEventsByIDs(ctx context.Context, ids []int64) ([]model.EventRecord, error)

	// SaveEvent durably saves the event and fills in its ID and CreatedAt.
	SaveEvent(ctx context.Context, event *model.EventRecord) error
}

// FacetRepository reads distinct values and counts from the whole, unfiltered event set.
type FacetRepository interface {
	// YearCounts returns the years of event start dates, descending.
	YearCounts(ctx context.Context) ([]model.ValueCount, error)

	// MonthCounts returns the number of events per 1-based start month. Months without
	// events are absent from the map.
	MonthCounts(ctx context.Context) (map[int]int, error)

	// CategoryCounts returns the event types, with absent ones folded into
	// model.Uncategorized, sorted by that normalized label.
	CategoryCounts(ctx context.Context) ([]model.ValueCount, error)

	// LocationCounts returns the non-null locations, sorted.
	LocationCounts(ctx context.Context) ([]model.ValueCount, error)
}

// Window is the slice of a result set to return.
type Window struct {
	// Limit is the maximum amount of events to return. Always positive.
	Limit int

	// Offset is the amount of matching events to skip. Never negative.
	Offset int
}

// EventRows gathers one window of matching events and the size of the full match.
type EventRows struct {
	Records []model.EventRecord
	Total   int
}

// UserRepository is the interface for user persistence.
type UserRepository interface {
	// SaveUser durably saves the user. It returns model.ErrAlreadyExists if the email is taken.
	SaveUser(ctx context.Context, user *model.User) error

	// GetUserByEmail returns the user with the given email or model.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// FavoriteRepository stores the user/event favorite relation.
type FavoriteRepository interface {
	// AddFavorite marks the event as favorite. Adding an existing pair is a no-op.
	// It returns model.ErrNotFound if the user does not exist.
	AddFavorite(ctx context.Context, userID uuid.UUID, eventID int64) error

	// RemoveFavorite removes the pair if present.
	RemoveFavorite(ctx context.Context, userID uuid.UUID, eventID int64) error

	// ListFavorites returns the ids of the favorite events of the user, most recently
	// favorited first. Events live in whichever store serves them, so only ids are kept here.
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]int64, error)
}

// PreferenceRepository stores explicit and learned user preferences.
type PreferenceRepository interface {
	// SavePreferences replaces the preferences of the user atomically.
	SavePreferences(ctx context.Context, userID uuid.UUID, prefs model.Preferences) error

	// GetPreferences returns the preferences of the user. Unknown users get empty preferences.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error)

	// AdjustWeight adds delta to the weight of a preferred category, flooring at zero,
	// and returns the new weight. It returns model.ErrNotFound if the user has no such preference.
	AdjustWeight(ctx context.Context, userID uuid.UUID, eventType string, delta float64) (float64, error)

	// SaveInteraction records the latest interaction of the user with an event.
	SaveInteraction(ctx context.Context, interaction model.Interaction) error
}
