package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
	"github.com/okruhlystol/catalog/internal/core/predicate"
)

// memEvents is an in-memory event store evaluating predicates the way the SQL does.
type memEvents struct {
	records  []model.EventRecord
	queryErr error
	queries  int
}

func (m *memEvents) QueryEvents(ctx context.Context, pred predicate.Predicate, window ports.Window) (*ports.EventRows, error) {
	m.queries++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var matching []model.EventRecord
	for _, r := range m.records {
		if matches(r, pred) {
			matching = append(matching, r)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		if !a.EventStartDate.Equal(b.EventStartDate) {
			return a.EventStartDate.After(b.EventStartDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	rows := &ports.EventRows{Total: len(matching), Records: []model.EventRecord{}}
	if window.Offset < len(matching) {
		end := window.Offset + window.Limit
		if end > len(matching) {
			end = len(matching)
		}
		rows.Records = matching[window.Offset:end]
	}
	return rows, nil
}

func (m *memEvents) GetEvent(ctx context.Context, id int64) (*model.EventRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memEvents) GetEventsByIDs(ctx context.Context, ids []int64) ([]model.EventRecord, error) {
	var out []model.EventRecord
	for _, id := range ids {
		if r, err := m.GetEvent(ctx, id); err == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memEvents) SaveEvent(ctx context.Context, event *model.EventRecord) error {
	event.ID = int64(len(m.records) + 1)
	event.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.records = append(m.records, *event)
	return nil
}

func matches(r model.EventRecord, pred predicate.Predicate) bool {
	for _, c := range pred.Conditions() {
		switch c.Op {
		case predicate.OpYear:
			if r.EventStartDate.Year() != c.Value.(int) {
				return false
			}
		case predicate.OpMonth:
			if int(r.EventStartDate.Month()) != c.Value.(int) {
				return false
			}
		case predicate.OpEquals:
			v := field(r, c.Fields[0])
			if v == nil || *v != c.Value.(string) {
				return false
			}
		case predicate.OpEqualsOrMissing:
			v := field(r, c.Fields[0])
			if v != nil && *v != "" && *v != c.Value.(string) {
				return false
			}
		case predicate.OpContains:
			needle := strings.ToLower(c.Value.(string))
			found := false
			for _, f := range c.Fields {
				if v := field(r, f); v != nil && strings.Contains(strings.ToLower(*v), needle) {
					found = true
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func field(r model.EventRecord, f predicate.Field) *string {
	switch f {
	case predicate.FieldTitle:
		return &r.Title
	case predicate.FieldDescription:
		return r.Description
	case predicate.FieldLocation:
		return r.Location
	case predicate.FieldEventType:
		return r.EventType
	}
	return nil
}

// stubFacets returns canned facet rows.
type stubFacets struct {
	years      []model.ValueCount
	months     map[int]int
	categories []model.ValueCount
	locations  []model.ValueCount
	err        error
}

func (s *stubFacets) YearCounts(ctx context.Context) ([]model.ValueCount, error) {
	return s.years, s.err
}

func (s *stubFacets) MonthCounts(ctx context.Context) (map[int]int, error) {
	return s.months, s.err
}

func (s *stubFacets) CategoryCounts(ctx context.Context) ([]model.ValueCount, error) {
	return s.categories, s.err
}

func (s *stubFacets) LocationCounts(ctx context.Context) ([]model.ValueCount, error) {
	return s.locations, s.err
}

func strPtr(s string) *string {
	return &s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
