package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
)

// SaveUser will save the user in the database. It returns model.ErrAlreadyExists if the
// email is taken.
func (p *PostgresDB) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to save method")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = p.nowFunc()
	}

	row := &userDB{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := p.db.ModelContext(ctx, row).Insert(); err != nil {
		return translateError(err)
	}
	return nil
}

// GetUserByEmail returns the user registered with email or model.ErrNotFound.
func (p *PostgresDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := new(userDB)
	if err := p.db.ModelContext(ctx, row).Where("u.email = ?", email).Select(); err != nil {
		return nil, translateError(err)
	}
	user := translateUserToModel(*row)
	return &user, nil
}
