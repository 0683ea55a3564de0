package postgres

import (
	"context"
	"strconv"

	"github.com/okruhlystol/catalog/internal/core/model"
)

// YearCounts returns the distinct start years, newest first.
func (p *PostgresDB) YearCounts(ctx context.Context) ([]model.ValueCount, error) {
	var rows []yearCountDB
	err := p.db.ModelContext(ctx, (*eventDB)(nil)).
		ColumnExpr("EXTRACT(YEAR FROM e.event_start_date)::int AS start_year").
		ColumnExpr("count(*) AS count").
		GroupExpr("start_year").
		OrderExpr("start_year DESC").
		Select(&rows)
	if err != nil {
		return nil, err
	}
	out := make([]model.ValueCount, len(rows))
	for i, r := range rows {
		out[i] = model.ValueCount{Value: strconv.Itoa(r.Year), Count: r.Count}
	}
	return out, nil
}

// MonthCounts returns the number of events per start month.
func (p *PostgresDB) MonthCounts(ctx context.Context) (map[int]int, error) {
	var rows []monthCountDB
	err := p.db.ModelContext(ctx, (*eventDB)(nil)).
		ColumnExpr("EXTRACT(MONTH FROM e.event_start_date)::int AS start_month").
		ColumnExpr("count(*) AS count").
		GroupExpr("start_month").
		Select(&rows)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(rows))
	for _, r := range rows {
		out[r.Month] = r.Count
	}
	return out, nil
}

// CategoryCounts returns the event types with absent and empty ones folded into
// model.Uncategorized, sorted by label.
func (p *PostgresDB) CategoryCounts(ctx context.Context) ([]model.ValueCount, error) {
	var rows []valueCountDB
	err := p.db.ModelContext(ctx, (*eventDB)(nil)).
		ColumnExpr("COALESCE(NULLIF(e.event_type, ''), ?) AS value", model.Uncategorized).
		ColumnExpr("count(*) AS count").
		GroupExpr("value").
		OrderExpr("value ASC").
		Select(&rows)
	if err != nil {
		return nil, err
	}
	return translateValueCounts(rows), nil
}

// LocationCounts returns the known locations, sorted.
func (p *PostgresDB) LocationCounts(ctx context.Context) ([]model.ValueCount, error) {
	var rows []valueCountDB
	err := p.db.ModelContext(ctx, (*eventDB)(nil)).
		ColumnExpr("e.location AS value").
		ColumnExpr("count(*) AS count").
		Where("e.location IS NOT NULL").
		Where("e.location <> ''").
		GroupExpr("e.location").
		OrderExpr("e.location ASC").
		Select(&rows)
	if err != nil {
		return nil, err
	}
	return translateValueCounts(rows), nil
}
