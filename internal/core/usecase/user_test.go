package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockUserRepository keeps users by email.
type MockUserRepository struct {
	users     map[string]model.User
	SaveError error
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *model.User) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	if _, ok := m.users[user.Email]; ok {
		return model.ErrAlreadyExists
	}
	user.ID = uuid.New()
	m.users[user.Email] = *user
	return nil
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &u, nil
}

// MockHasher "hashes" by prefixing.
type MockHasher struct {
	HashError error
}

func (m *MockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, m.HashError
}

func (m *MockHasher) Compare(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

func TestUserService_Register(t *testing.T) {
	hashErr := errors.New("no entropy")
	tests := []struct {
		name          string
		args          model.RegisterArgs
		hashError     error
		existing      []string
		expectedError func(t *testing.T, err error)
	}{
		{
			name: "new user",
			args: model.RegisterArgs{Email: " Jana@Example.com ", Password: "tajne", FirstName: "Jana", LastName: "Nová"},
		},
		{
			name:     "email taken",
			args:     model.RegisterArgs{Email: "jana@example.com", Password: "tajne"},
			existing: []string{"jana@example.com"},
			expectedError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrAlreadyExists)
			},
		},
		{
			name: "missing password",
			args: model.RegisterArgs{Email: "jana@example.com"},
			expectedError: func(t *testing.T, err error) {
				var verr *model.ValidationError
				assert.ErrorAs(t, err, &verr)
			},
		},
		{
			name:      "hasher failure",
			args:      model.RegisterArgs{Email: "jana@example.com", Password: "tajne"},
			hashError: hashErr,
			expectedError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, hashErr)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := &MockUserRepository{users: map[string]model.User{}}
			for _, e := range test.existing {
				repo.users[e] = model.User{Email: e}
			}
			svc := NewUserService(UserServiceArgs{Repository: repo, Hasher: &MockHasher{HashError: test.hashError}})

			user, err := svc.Register(context.Background(), test.args)
			if test.expectedError != nil {
				test.expectedError(t, err)
				require.Nil(t, user)
				return
			}
			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, user.ID)
			require.Equal(t, "jana@example.com", user.Email)
			require.Equal(t, "hashed:"+test.args.Password, user.PasswordHash)
			require.Equal(t, test.args.FirstName, user.FirstName)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	repo := &MockUserRepository{users: map[string]model.User{
		"jana@example.com": {ID: uuid.New(), Email: "jana@example.com", PasswordHash: "hashed:tajne"},
	}}
	svc := NewUserService(UserServiceArgs{Repository: repo, Hasher: &MockHasher{}})

	user, err := svc.Login(context.Background(), model.LoginArgs{Email: "JANA@example.com", Password: "tajne"})
	require.NoError(t, err)
	require.Equal(t, "jana@example.com", user.Email)

	_, err = svc.Login(context.Background(), model.LoginArgs{Email: "jana@example.com", Password: "zle"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), model.LoginArgs{Email: "peter@example.com", Password: "tajne"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}
