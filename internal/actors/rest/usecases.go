package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
)

// EventUsecase is the event catalog as seen by the handlers.
type EventUsecase interface {
	ListEvents(ctx context.Context, filter model.FilterRequest, page model.PageRequest) (*model.EventPage, error)
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	CreateEvent(ctx context.Context, args model.CreateEventArgs) (*model.Event, error)
}

// FacetUsecase describes the available filter values.
type FacetUsecase interface {
	Years(ctx context.Context) ([]string, error)
	Months(ctx context.Context) ([]model.MonthOption, error)
	Categories(ctx context.Context) ([]model.CategoryOption, error)
	Locations(ctx context.Context) ([]string, error)
	All(ctx context.Context) (*model.Facets, error)
}

// UserUsecase registers and authenticates members.
type UserUsecase interface {
	Register(ctx context.Context, args model.RegisterArgs) (*model.User, error)
	Login(ctx context.Context, args model.LoginArgs) (*model.User, error)
}

// FavoriteUsecase serves favorites and recommendations.
type FavoriteUsecase interface {
	AddFavorite(ctx context.Context, args model.FavoriteArgs) error
	RemoveFavorite(ctx context.Context, args model.FavoriteArgs) error
	Favorites(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
	Recommendations(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
}

// PreferenceUsecase stores preferences and interactions.
type PreferenceUsecase interface {
	SavePreferences(ctx context.Context, args model.SavePreferencesArgs) error
	GetPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error)
	RecordInteraction(ctx context.Context, args model.InteractionArgs) error
}
