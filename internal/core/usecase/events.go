package usecase

import (
	"context"
	"fmt"

	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
	"github.com/okruhlystol/catalog/internal/core/predicate"
)

// EventServiceArgs contains the mandatory arguments for the EventService.
type EventServiceArgs struct {
	// Repository is the event store.
	Repository ports.EventRepository

	// MapsKey is the API key embedded in generated map URLs.
	MapsKey string
}

// NewEventService creates a new EventService.
func NewEventService(args EventServiceArgs) *EventService {
	return &EventService{repository: args.Repository, mapper: mapper{mapsKey: args.MapsKey}}
}

// EventService lists, reads and creates catalog events.
type EventService struct {
	repository ports.EventRepository
	mapper     mapper
}

// ListEvents returns one page of the events matching filter. The total and the page are
// computed from the same predicate; a page past the end is empty with an unchanged total.
func (s *EventService) ListEvents(ctx context.Context, filter model.FilterRequest, page model.PageRequest) (*model.EventPage, error) {
	page = model.NewPageRequest(page.Page, page.Limit)
	pred := predicate.Build(filter)

	rows, err := s.repository.QueryEvents(ctx, pred, ports.Window{Limit: page.Limit, Offset: page.Offset()})
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}

	return &model.EventPage{
		Items:     s.mapper.toEvents(rows.Records, listShortText),
		Total:     rows.Total,
		Page:      page.Page,
		PageCount: pageCount(rows.Total, page.Limit),
	}, nil
}

// GetEvent returns a single event. It returns model.ErrNotFound if the id is unknown.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	rec, err := s.repository.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting event %d: %w", id, err)
	}
	e := s.mapper.toEvent(*rec, detailShortText)
	return &e, nil
}

// CreateEvent validates and stores a new event.
func (s *EventService) CreateEvent(ctx context.Context, args model.CreateEventArgs) (*model.Event, error) {
	rec, err := args.Record()
	if err != nil {
		return nil, err
	}
	if err := s.repository.SaveEvent(ctx, rec); err != nil {
		return nil, fmt.Errorf("error saving event in repository: %w", err)
	}
	e := s.mapper.toEvent(*rec, detailShortText)
	return &e, nil
}

// pageCount is ceil(total/limit). limit is normalized to at least 1 before reaching here,
// a zero limit is a programming error.
func pageCount(total, limit int) int {
	if limit <= 0 {
		panic("usecase: page limit must be positive")
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
