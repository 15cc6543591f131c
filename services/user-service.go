package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/models"
	"task-manager/backend/repositories"
	"task-manager/backend/utils"
)

var (
	ErrEmailTaken         = errors.New("an account with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService struct {
	store repositories.UserStore
}

func NewUserService(store repositories.UserStore) *UserService {
	return &UserService{store: store}
}

// Register creates an account with a bcrypt-hashed password. Emails are
// lowercased so lookups are case-insensitive.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "Please provide a name"}
	}
	if email == "" {
		return nil, &models.ValidationError{Field: "email", Message: "Please provide an email"}
	}
	if len(password) < 6 {
		return nil, &models.ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so the response does not reveal which one failed.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.store.FindByID(ctx, id)
}
