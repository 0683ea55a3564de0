package rest

import (
	"context"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
)

type stubEvents struct {
	page  *model.EventPage
	event *model.Event
	err   error

	gotFilter model.FilterRequest
	gotPage   model.PageRequest
	gotID     int64
	gotCreate model.CreateEventArgs
}

func (s *stubEvents) ListEvents(_ context.Context, filter model.FilterRequest, page model.PageRequest) (*model.EventPage, error) {
	s.gotFilter, s.gotPage = filter, page
	return s.page, s.err
}

func (s *stubEvents) GetEvent(_ context.Context, id int64) (*model.Event, error) {
	s.gotID = id
	return s.event, s.err
}

func (s *stubEvents) CreateEvent(_ context.Context, args model.CreateEventArgs) (*model.Event, error) {
	s.gotCreate = args
	return s.event, s.err
}

type stubFacets struct {
	years []string
	err   error
}

func (s *stubFacets) Years(context.Context) ([]string, error) { return s.years, s.err }

func (s *stubFacets) Months(context.Context) ([]model.MonthOption, error) {
	return []model.MonthOption{{Name: model.AllValue, Value: model.AllValue}}, s.err
}

func (s *stubFacets) Categories(context.Context) ([]model.CategoryOption, error) {
	return []model.CategoryOption{{Name: model.AllValue, Value: model.AllValue}}, s.err
}

func (s *stubFacets) Locations(context.Context) ([]string, error) {
	return []string{model.AllValue}, s.err
}

func (s *stubFacets) All(context.Context) (*model.Facets, error) {
	return &model.Facets{}, s.err
}

type stubUsers struct {
	user *model.User
	err  error
}

func (s *stubUsers) Register(context.Context, model.RegisterArgs) (*model.User, error) {
	return s.user, s.err
}

func (s *stubUsers) Login(context.Context, model.LoginArgs) (*model.User, error) {
	return s.user, s.err
}

type stubFavorites struct {
	events []model.Event
	err    error

	gotUser uuid.UUID
	gotArgs model.FavoriteArgs
}

func (s *stubFavorites) AddFavorite(_ context.Context, args model.FavoriteArgs) error {
	s.gotArgs = args
	return s.err
}

func (s *stubFavorites) RemoveFavorite(_ context.Context, args model.FavoriteArgs) error {
	s.gotArgs = args
	return s.err
}

func (s *stubFavorites) Favorites(_ context.Context, userID uuid.UUID) ([]model.Event, error) {
	s.gotUser = userID
	return s.events, s.err
}

func (s *stubFavorites) Recommendations(_ context.Context, userID uuid.UUID) ([]model.Event, error) {
	s.gotUser = userID
	return s.events, s.err
}

type stubPreferences struct {
	prefs *model.Preferences
	err   error

	gotSave        model.SavePreferencesArgs
	gotInteraction model.InteractionArgs
}

func (s *stubPreferences) SavePreferences(_ context.Context, args model.SavePreferencesArgs) error {
	s.gotSave = args
	return s.err
}

func (s *stubPreferences) GetPreferences(context.Context, uuid.UUID) (*model.Preferences, error) {
	return s.prefs, s.err
}

func (s *stubPreferences) RecordInteraction(_ context.Context, args model.InteractionArgs) error {
	s.gotInteraction = args
	return s.err
}
