package postgres

import (
	"context"
	"errors"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
)

// defaultWeight is the weight of a freshly chosen category.
const defaultWeight = 1.0

// SavePreferences replaces the preferred categories and settings of the user in one
// transaction. It returns model.ErrNotFound if the user does not exist.
func (p *PostgresDB) SavePreferences(ctx context.Context, userID uuid.UUID, prefs model.Preferences) error {
	return p.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		q := tx.ModelContext(ctx, (*userDB)(nil)).Where("u.id = ?", userID)
		if prefs.Settings == nil {
			q = q.Set("preferences = NULL")
		} else {
			q = q.Set("preferences = ?", prefs.Settings)
		}
		res, err := q.Update()
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return model.ErrNotFound
		}

		if _, err := tx.ModelContext(ctx, (*preferenceDB)(nil)).Where("p.user_id = ?", userID).Delete(); err != nil {
			return err
		}
		if len(prefs.EventCategories) == 0 {
			return nil
		}

		rows := make([]preferenceDB, 0, len(prefs.EventCategories))
		for _, c := range prefs.EventCategories {
			rows = append(rows, preferenceDB{UserID: userID, EventType: c, Weight: defaultWeight})
		}
		if _, err := tx.ModelContext(ctx, &rows).OnConflict("DO NOTHING").Insert(); err != nil {
			return translateError(err)
		}
		return nil
	})
}

// GetPreferences returns the preferred categories and settings of the user. Users without
// preferences, known or not, get empty ones.
func (p *PostgresDB) GetPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error) {
	var rows []preferenceDB
	err := p.db.ModelContext(ctx, &rows).
		Column("event_type").
		Where("p.user_id = ?", userID).
		Order("event_type ASC").
		Select()
	if err != nil {
		return nil, err
	}

	prefs := &model.Preferences{EventCategories: make([]string, len(rows))}
	for i, r := range rows {
		prefs.EventCategories[i] = r.EventType
	}

	user := new(userDB)
	err = p.db.ModelContext(ctx, user).Column("preferences").Where("u.id = ?", userID).Select()
	if err != nil && !errors.Is(err, pg.ErrNoRows) {
		return nil, err
	}
	prefs.Settings = user.Settings
	return prefs, nil
}

// AdjustWeight moves the weight of one preferred category, never below zero.
func (p *PostgresDB) AdjustWeight(ctx context.Context, userID uuid.UUID, eventType string, delta float64) (float64, error) {
	var weight float64
	_, err := p.db.QueryOneContext(ctx, pg.Scan(&weight), `
		UPDATE catalog.user_preferences
		SET weight = GREATEST(0.0, weight + ?)
		WHERE user_id = ? AND event_type = ?
		RETURNING weight`, delta, userID, eventType)
	if err != nil {
		return 0, translateError(err)
	}
	return weight, nil
}

// SaveInteraction keeps the latest interaction per user and event.
func (p *PostgresDB) SaveInteraction(ctx context.Context, interaction model.Interaction) error {
	row := &interactionDB{
		UserID:          interaction.UserID,
		EventID:         interaction.EventID,
		ActionType:      interaction.ActionType,
		InteractionTime: interaction.At,
	}
	_, err := p.db.ModelContext(ctx, row).
		OnConflict("(user_id, event_id) DO UPDATE").
		Set("action_type = EXCLUDED.action_type").
		Set("interaction_time = EXCLUDED.interaction_time").
		Insert()
	return translateError(err)
}
