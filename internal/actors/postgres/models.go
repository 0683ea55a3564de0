package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
)

type eventDB struct {
	tableName struct{} `pg:"catalog.events,alias:e"`

	ID             int64      `pg:"id,pk"`
	Title          string     `pg:"title"`
	EventType      *string    `pg:"event_type"`
	Location       *string    `pg:"location"`
	EventStartDate time.Time  `pg:"event_start_date,type:date"`
	EventEndDate   *time.Time `pg:"event_end_date,type:date"`
	StartTime      *string    `pg:"start_time"`
	EndTime        *string    `pg:"end_time"`
	Tickets        *string    `pg:"tickets"`
	Description    *string    `pg:"description"`
	LinkTo         *string    `pg:"link_to"`
	ImageURL       *string    `pg:"image_url"`

	// CreatedAt breaks ties between events starting the same day.
	CreatedAt time.Time `pg:"created_at"`
}

type userDB struct {
	tableName struct{} `pg:"catalog.users,alias:u"`

	// ID unique identifier of the user.
	ID uuid.UUID `pg:"id,pk,type:uuid,default:uuid_generate_v4()"`

	// Email is unique across users.
	Email string `pg:"email"`

	// PasswordHash contains the password hash.
	PasswordHash string `pg:"password_hash"`

	FirstName string `pg:"first_name"`
	LastName  string `pg:"last_name"`

	// Settings holds the free-form part of the preferences.
	Settings map[string]any `pg:"preferences,type:jsonb"`

	// CreatedAt is the time at which the user registered.
	CreatedAt time.Time `pg:"created_at"`
}

type favoriteDB struct {
	tableName struct{} `pg:"catalog.user_favorites,alias:f"`

	UserID      uuid.UUID `pg:"user_id,pk,type:uuid"`
	EventID     int64     `pg:"event_id,pk"`
	FavoritedAt time.Time `pg:"favorited_at"`
}

type preferenceDB struct {
	tableName struct{} `pg:"catalog.user_preferences,alias:p"`

	UserID    uuid.UUID `pg:"user_id,pk,type:uuid"`
	EventType string    `pg:"event_type,pk"`
	Weight    float64   `pg:"weight,use_zero"`
}

type interactionDB struct {
	tableName struct{} `pg:"catalog.user_event_interactions,alias:i"`

	UserID          uuid.UUID `pg:"user_id,pk,type:uuid"`
	EventID         int64     `pg:"event_id,pk"`
	ActionType      string    `pg:"action_type"`
	InteractionTime time.Time `pg:"interaction_time"`
}

// valueCountDB is the row shape of the category and location facets.
type valueCountDB struct {
	Value string `pg:"value"`
	Count int    `pg:"count"`
}

type yearCountDB struct {
	Year  int `pg:"start_year"`
	Count int `pg:"count"`
}

type monthCountDB struct {
	Month int `pg:"start_month"`
	Count int `pg:"count"`
}

func toEventDB(e *model.EventRecord) *eventDB {
	return &eventDB{
		ID:             e.ID,
		Title:          e.Title,
		EventType:      e.EventType,
		Location:       e.Location,
		EventStartDate: e.EventStartDate,
		EventEndDate:   e.EventEndDate,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		Tickets:        e.Tickets,
		Description:    e.Description,
		LinkTo:         e.LinkTo,
		ImageURL:       e.ImageURL,
		CreatedAt:      e.CreatedAt,
	}
}

func translateEventsToModels(rows []eventDB) []model.EventRecord {
	records := make([]model.EventRecord, len(rows))
	for i, r := range rows {
		records[i] = translateEventToModel(r)
	}
	return records
}

func translateEventToModel(r eventDB) model.EventRecord {
	return model.EventRecord{
		ID:             r.ID,
		Title:          r.Title,
		EventType:      r.EventType,
		Location:       r.Location,
		EventStartDate: r.EventStartDate,
		EventEndDate:   r.EventEndDate,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Tickets:        r.Tickets,
		Description:    r.Description,
		LinkTo:         r.LinkTo,
		ImageURL:       r.ImageURL,
		CreatedAt:      r.CreatedAt,
	}
}

func translateUserToModel(u userDB) model.User {
	return model.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		CreatedAt:    u.CreatedAt,
	}
}

func translateValueCounts(rows []valueCountDB) []model.ValueCount {
	out := make([]model.ValueCount, len(rows))
	for i, r := range rows {
		out[i] = model.ValueCount{Value: r.Value, Count: r.Count}
	}
	return out
}
