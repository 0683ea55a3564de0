package model

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPage is the page served when none (or a malformed one) is requested.
	DefaultPage = 1

	// DefaultLimit is the page size served when none (or a malformed one) is requested.
	DefaultLimit = 4

	// MaxLimit caps the page size a client may request.
	MaxLimit = 100

	// DateLayout is the wire and storage layout of event dates.
	DateLayout = "2006-01-02"
)

// FilterRequest is the immutable set of optional filters of one listing request.
// Every field is kept as received; interpretation happens in the predicate builder.
type FilterRequest struct {
	// Year is a calendar year such as "2024". Empty or "All" disables the filter.
	Year string

	// Month is a canonical month name, matched case-insensitively.
	Month string

	// EventType is matched by exact equality against the stored category.
	EventType string

	// Location is matched by exact equality against the stored location.
	Location string

	// Search is matched as a case-insensitive substring of title, description or location.
	Search string
}

// PageRequest is a normalized, 1-based page window.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of matching events skipped before the page starts. It saturates
// at math.MaxInt, which no store can reach, so absurd pages come back empty.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// NewPageRequest normalizes page and limit: anything below 1 falls back to the defaults
// and limits above MaxLimit are clamped.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// ParsePageRequest builds a PageRequest from raw query values. Missing, non-numeric,
// zero and negative values are replaced by the defaults.
func ParsePageRequest(page, limit string) PageRequest {
	return NewPageRequest(atoiOrZero(page), atoiOrZero(limit))
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// EventPage is one page of a filtered listing.
type EventPage struct {
	Items     []Event `json:"posts"`
	Total     int     `json:"total"`
	Page      int     `json:"page"`
	PageCount int     `json:"pages"`
}

// CreateEventArgs contain the arguments of the CreateEvent use-case.
type CreateEventArgs struct {
	Title          string  `json:"title"`
	EventType      *string `json:"event_type"`
	Location       *string `json:"location"`
	EventStartDate string  `json:"event_start_date"`
	EventEndDate   *string `json:"event_end_date"`
	StartTime      string  `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Tickets        *string `json:"tickets"`
	Description    *string `json:"description"`
	LinkTo         *string `json:"link_to"`
	ImageURL       *string `json:"image_url"`
}

// Record validates the arguments and converts them to a storable record.
// title, event_start_date and start_time are mandatory.
func (a CreateEventArgs) Record() (*EventRecord, error) {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.EventStartDate) == "" || strings.TrimSpace(a.StartTime) == "" {
		return nil, NewValidationError("missing required fields")
	}
	start, err := time.Parse(DateLayout, a.EventStartDate)
	if err != nil {
		return nil, NewValidationError("invalid event_start_date")
	}
	rec := &EventRecord{
		Title:          a.Title,
		EventType:      nonEmpty(a.EventType),
		Location:       nonEmpty(a.Location),
		EventStartDate: start,
		StartTime:      &a.StartTime,
		EndTime:        nonEmpty(a.EndTime),
		Tickets:        nonEmpty(a.Tickets),
		Description:    nonEmpty(a.Description),
		LinkTo:         nonEmpty(a.LinkTo),
		ImageURL:       nonEmpty(a.ImageURL),
	}
	if end := nonEmpty(a.EventEndDate); end != nil {
		t, err := time.Parse(DateLayout, *end)
		if err != nil {
			return nil, NewValidationError("invalid event_end_date")
		}
		rec.EventEndDate = &t
	}
	return rec, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// RegisterArgs contain the arguments of the Register use-case.
type RegisterArgs struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginArgs contain the arguments of the Login use-case.
type LoginArgs struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FavoriteArgs identifies one (user, event) favorite pair.
type FavoriteArgs struct {
	UserID  uuid.UUID
	EventID int64
}

// InteractionArgs contain the arguments of the RecordInteraction use-case.
type InteractionArgs struct {
	UserID     uuid.UUID
	EventID    int64
	ActionType string
}

// InteractionEvent is published every time a user reacts to an event.
type InteractionEvent struct {
	// ID is the message id assigned by the transport. Empty before publishing.
	ID string `json:"-"`

	UserID     uuid.UUID `json:"user_id"`
	EventID    int64     `json:"event_id"`
	ActionType string    `json:"action_type"`
	At         time.Time `json:"at"`
}

// SavePreferencesArgs contain the arguments of the SavePreferences use-case.
type SavePreferencesArgs struct {
	UserID      uuid.UUID
	Preferences Preferences
}
