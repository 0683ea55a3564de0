package postgres

import (
	"context"
	"errors"

	"github.com/go-pg/pg/v10"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
	"github.com/okruhlystol/catalog/internal/core/predicate"
)

// QueryEvents counts and pages the events matching pred inside one read-only
// repeatable-read transaction, so total and rows describe the same snapshot.
func (p *PostgresDB) QueryEvents(ctx context.Context, pred predicate.Predicate, window ports.Window) (*ports.EventRows, error) {
	var (
		rows  []eventDB
		total int
	)
	err := p.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.ExecContext(ctx, "SET TRANSACTION ISOLATION LEVEL REPEATABLE READ, READ ONLY"); err != nil {
			return err
		}

		q := tx.ModelContext(ctx, &rows)
		for _, c := range predicate.SQL(pred) {
			q = q.Where(c.Clause, c.Params...)
		}

		var err error
		if total, err = q.Count(); err != nil {
			return err
		}
		if total <= window.Offset {
			return nil
		}
		return q.Order("event_start_date DESC", "created_at DESC", "id DESC").
			Limit(window.Limit).
			Offset(window.Offset).
			Select()
	})
	if err != nil {
		return nil, err
	}
	return &ports.EventRows{Records: translateEventsToModels(rows), Total: total}, nil
}

// GetEvent returns the event with the given id. It returns model.ErrNotFound if there is none.
func (p *PostgresDB) GetEvent(ctx context.Context, id int64) (*model.EventRecord, error) {
	row := new(eventDB)
	if err := p.db.ModelContext(ctx, row).Where("e.id = ?", id).Select(); err != nil {
		return nil, translateError(err)
	}
	rec := translateEventToModel(*row)
	return &rec, nil
}

// GetEventsByIDs returns the existing events among ids.
func (p *PostgresDB) GetEventsByIDs(ctx context.Context, ids []int64) ([]model.EventRecord, error) {
	if len(ids) == 0 {
		return []model.EventRecord{}, nil
	}
	var rows []eventDB
	if err := p.db.ModelContext(ctx, &rows).WhereIn("e.id IN (?)", ids).Select(); err != nil {
		return nil, err
	}
	return translateEventsToModels(rows), nil
}

// SaveEvent inserts the event and fills in the generated id and creation time.
func (p *PostgresDB) SaveEvent(ctx context.Context, event *model.EventRecord) error {
	if event == nil {
		return errors.New("nil event passed to save method")
	}
	row := toEventDB(event)
	row.ID = 0
	if row.CreatedAt.IsZero() {
		row.CreatedAt = p.nowFunc()
	}
	if _, err := p.db.ModelContext(ctx, row).Returning("id").Insert(); err != nil {
		return translateError(err)
	}
	event.ID = row.ID
	event.CreatedAt = row.CreatedAt
	return nil
}
