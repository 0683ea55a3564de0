package ports

import (
	"context"

	"github.com/google/uuid"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash returns an encoded hash of password.
	Hash(password string) (string, error)

	// Compare reports whether password matches the encoded hash.
	Compare(password, hash string) (bool, error)
}

// Recommender is the external recommendation service.
type Recommender interface {
	// Recommend returns event ids for the user, best first.
	Recommend(ctx context.Context, userID uuid.UUID) ([]int64, error)
}
