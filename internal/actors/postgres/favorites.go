package postgres

import (
	"context"

	"github.com/google/uuid"
)

// AddFavorite stores the pair unless it already exists. It returns model.ErrNotFound if
// the user does not exist.
func (p *PostgresDB) AddFavorite(ctx context.Context, userID uuid.UUID, eventID int64) error {
	row := &favoriteDB{UserID: userID, EventID: eventID, FavoritedAt: p.nowFunc()}
	if _, err := p.db.ModelContext(ctx, row).OnConflict("DO NOTHING").Insert(); err != nil {
		return translateError(err)
	}
	return nil
}

// RemoveFavorite deletes the pair. Removing a missing pair is not an error.
func (p *PostgresDB) RemoveFavorite(ctx context.Context, userID uuid.UUID, eventID int64) error {
	_, err := p.db.ModelContext(ctx, (*favoriteDB)(nil)).
		Where("f.user_id = ?", userID).
		Where("f.event_id = ?", eventID).
		Delete()
	return err
}

// ListFavorites returns the favorite event ids of the user, latest first.
func (p *PostgresDB) ListFavorites(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	var rows []favoriteDB
	err := p.db.ModelContext(ctx, &rows).
		Column("event_id").
		Where("f.user_id = ?", userID).
		Order("favorited_at DESC", "event_id DESC").
		Select()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.EventID
	}
	return ids, nil
}
