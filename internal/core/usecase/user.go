package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
)

// UserServiceArgs contains the mandatory arguments for the UserService.
type UserServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.UserRepository

	// Hasher hashes and verifies passwords.
	Hasher ports.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(args UserServiceArgs) *UserService {
	return &UserService{repository: args.Repository, hasher: args.Hasher}
}

// UserService gathers registration and login.
type UserService struct {
	repository ports.UserRepository
	hasher     ports.PasswordHasher
}

// Register creates a user. It returns model.ErrAlreadyExists if the email is taken.
func (s *UserService) Register(ctx context.Context, args model.RegisterArgs) (*model.User, error) {
	email := normalizeEmail(args.Email)
	if email == "" || args.Password == "" {
		return nil, model.NewValidationError("email and password are required")
	}

	hash, err := s.hasher.Hash(args.Password)
	if err != nil {
		return nil, fmt.Errorf("error creating password hash: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    args.FirstName,
		LastName:     args.LastName,
	}
	if err := s.repository.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error saving user in repository: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns the matching user. Unknown emails and wrong
// passwords both return model.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, args model.LoginArgs) (*model.User, error) {
	email := normalizeEmail(args.Email)
	if email == "" || args.Password == "" {
		return nil, model.NewValidationError("email and password are required")
	}

	user, err := s.repository.GetUserByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("error reading user: %w", err)
	}

	ok, err := s.hasher.Compare(args.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error comparing password hash: %w", err)
	}
	if !ok {
		return nil, model.ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
