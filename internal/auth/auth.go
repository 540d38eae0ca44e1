// Package auth manages user accounts: signup with a salted argon2id digest
// and login against it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/khrees2412/resumatch/internal/database"
	"github.com/khrees2412/resumatch/pkg/models"
)

var (
	ErrUserExists         = database.ErrUserExists
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid signup input")
)

var validate = validator.New()

// UserStore is the account storage the service needs
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) error
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// Credentials are what a user types to sign up or log in
type Credentials struct {
	Username string `validate:"required,min=3,max=32,alphanum"`
	Password string `validate:"required,min=8,max=256"`
}

// Service signs users up and logs them in
type Service struct {
	store  UserStore
	hasher *Hasher
}

// NewService returns a Service backed by store
func NewService(store UserStore, hasher *Hasher) *Service {
	return &Service{store: store, hasher: hasher}
}

// Signup creates an account. The password is stored only as a digest.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	creds := Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, describe(err))
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return err
	}
	if err := s.store.CreateUser(ctx, creds.Username, hash); err != nil {
		return fmt.Errorf("signup %s: %w", creds.Username, err)
	}
	return nil
}

// Login checks a username and password and returns the account
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, strings.TrimSpace(username))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", user.Username, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// describe turns validator errors into a short message naming the bad fields
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param()))
		case "alphanum":
			msgs = append(msgs, strings.ToLower(fe.Field())+" may only contain letters and digits")
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}
