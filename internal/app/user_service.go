package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"intelimed/internal/model"
	"intelimed/internal/persona"
)

type UserService struct {
	store UserStore
	now   func() time.Time
}

type CreateUserInput struct {
	Username string
	Password string
	Persona  string
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store, now: time.Now}
}

// Create registers a profile. The password is stored only as a bcrypt hash.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}
	if input.Persona != "" && !persona.Known(input.Persona) {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		ID:           model.NewID(),
		Username:     username,
		PasswordHash: string(hash),
		Persona:      persona.Parse(input.Persona).String(),
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
