package mongo

import (
	"fmt"
	"time"

	"github.com/okruhlystol/catalog/internal/core/model"
)

type eventDB struct {
	// ID is a sequence number taken from the counters collection.
	ID int64 `bson:"_id"`

	Title          string     `bson:"title"`
	EventType      *string    `bson:"event_type,omitempty"`
	Location       *string    `bson:"location,omitempty"`
	EventStartDate time.Time  `bson:"event_start_date"`
	EventEndDate   *time.Time `bson:"event_end_date,omitempty"`
	StartTime      *string    `bson:"start_time,omitempty"`
	EndTime        *string    `bson:"end_time,omitempty"`
	Tickets        *string    `bson:"tickets,omitempty"`
	Description    *string    `bson:"description,omitempty"`
	LinkTo         *string    `bson:"link_to,omitempty"`
	ImageURL       *string    `bson:"image_url,omitempty"`

	// CreatedAt breaks ties between events starting the same day.
	CreatedAt time.Time `bson:"created_at"`
}

// groupDB is the output document of every facet aggregation.
type groupDB struct {
	ID    any `bson:"_id"`
	Count int `bson:"count"`
}

func toDBModel(e *model.EventRecord) *eventDB {
	return &eventDB{
		ID:             e.ID,
		Title:          e.Title,
		EventType:      e.EventType,
		Location:       e.Location,
		EventStartDate: e.EventStartDate.UTC(),
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

func translateDBToModels(rows []eventDB) []model.EventRecord {
	records := make([]model.EventRecord, len(rows))
	for i, r := range rows {
		records[i] = translateDBToModel(r)
	}
	return records
}

func translateDBToModel(r eventDB) model.EventRecord {
	rec := model.EventRecord{
		ID:             r.ID,
		Title:          r.Title,
		EventType:      r.EventType,
		Location:       r.Location,
		EventStartDate: r.EventStartDate.UTC(),
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Tickets:        r.Tickets,
		Description:    r.Description,
		LinkTo:         r.LinkTo,
		ImageURL:       r.ImageURL,
		CreatedAt:      r.CreatedAt.UTC(),
	}
	if r.EventEndDate != nil {
		end := r.EventEndDate.UTC()
		rec.EventEndDate = &end
	}
	return rec
}

func translateValueCounts(rows []groupDB) []model.ValueCount {
	out := make([]model.ValueCount, len(rows))
	for i, r := range rows {
		out[i] = model.ValueCount{Value: fmt.Sprint(r.ID), Count: r.Count}
	}
	return out
}
