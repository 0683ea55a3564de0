package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// AllValue is the filter value meaning "no constraint on this dimension".
	AllValue = "All"

	// Uncategorized replaces an absent event type at the read boundary.
	Uncategorized = "Uncategorized"

	// UnknownLocation replaces an absent location at the read boundary.
	UnknownLocation = "Unknown location"

	// DefaultImageURL is served for events stored without an image.
	DefaultImageURL = "https://images.unsplash.com/photo-1540575861501-7cf05a4b125a?ixlib=rb-4.0.3&auto=format&fit=crop&w=320&q=80"
)

// EventRecord is an event as it is stored. Optional columns are pointers so that
// NULL stays distinguishable from an empty string until the read boundary.
type EventRecord struct {
	// ID unique identifier of the event, assigned by the store.
	ID int64

	// Title of the event.
	Title string

	// EventType is the free-text category of the event.
	EventType *string

	// Location is the free-text venue of the event.
	Location *string

	// EventStartDate is the (date only) day the event starts.
	EventStartDate time.Time

	// EventEndDate is the (date only) day the event ends.
	EventEndDate *time.Time

	// StartTime and EndTime are time-of-day strings such as "18:00".
	StartTime *string
	EndTime   *string

	Tickets     *string
	Description *string
	LinkTo      *string
	ImageURL    *string

	// CreatedAt is the insertion time; it breaks ordering ties between equal start dates.
	CreatedAt time.Time
}

// Event is the external representation of an event.
type Event struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Category       string  `json:"category"`
	Location       string  `json:"location"`
	MapURL         string  `json:"map_url"`
	Year           string  `json:"date"`
	Month          string  `json:"month"`
	ShortText      string  `json:"short_text"`
	FullText       string  `json:"full_text"`
	Image          string  `json:"image"`
	EventStartDate string  `json:"event_start_date"`
	EventEndDate   *string `json:"event_end_date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Tickets        *string `json:"tickets"`
	LinkTo         *string `json:"link_to"`
}

// User represents a registered member.
type User struct {
	// ID unique identifier of the user.
	ID uuid.UUID `json:"id"`

	// Email is unique across users.
	Email string `json:"email"`

	// PasswordHash contains the password hash.
	PasswordHash string `json:"-"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// CreatedAt is the time at which the user registered.
	CreatedAt time.Time `json:"-"`
}

// Interaction is the latest reaction of a user to an event.
type Interaction struct {
	UserID     uuid.UUID
	EventID    int64
	ActionType string
	At         time.Time
}

// Preferences gathers what a user told us they like.
type Preferences struct {
	// EventCategories are the preferred event types.
	EventCategories []string `json:"eventCategories"`

	// Settings is an opaque JSON document (time, distance, budget...).
	Settings map[string]any `json:"settings,omitempty"`
}

// ValueCount is one distinct value of a dimension and how many events carry it.
type ValueCount struct {
	Value string
	Count int
}

// FacetOption is one selectable value of a filter dimension.
type FacetOption struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Count     int    `json:"count"`
	Available bool   `json:"available"`
}

// Facets holds every filter dimension in the uniform option shape.
type Facets struct {
	Years      []FacetOption `json:"years"`
	Months     []FacetOption `json:"months"`
	Categories []FacetOption `json:"categories"`
	Locations  []FacetOption `json:"locations"`
}
