package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/userauth/userauth-go/internal/crypto"
	"github.com/userauth/userauth-go/internal/model"
	"github.com/userauth/userauth-go/internal/repository"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrNameRequired     = errors.New("name is required")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrForbidden        = errors.New("admin privileges required")
	ErrNotOwner         = errors.New("user does not belong to caller")
)

// UserStore is the persistence the user service depends on.
// Lookups report a missing record with repository.ErrUserNotFound.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
}

// UserService handles account and authentication business logic.
type UserService struct {
	store     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, secret string, expiry time.Duration) *UserService {
	return &UserService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// CreateUser stores a new account. The plaintext password is only kept long
// enough to hash it.
func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	if strings.TrimSpace(req.Email) == "" {
		return model.User{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.User{}, ErrPasswordRequired
	}
	if len(req.Password) > maxPasswordBytes {
		return model.User{}, ErrPasswordTooLong
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.User{}, ErrNameRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user := &model.User{
		Email:        strings.TrimSpace(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Admin:        req.Admin,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}

	return *user, nil
}

// Authenticate checks an email/password pair and issues an access token.
func (s *UserService) Authenticate(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	user, err := s.store.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrUserNotFound
		}
		return model.AuthResponse{}, fmt.Errorf("looking up user: %w", err)
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrPasswordMismatch
	}

	token, err := crypto.GenerateToken(user.Claims(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token}, nil
}

// ListUsers returns every user keyed by id. Only admins may list.
func (s *UserService) ListUsers(ctx context.Context, caller model.AuthClaims) (map[string]model.UserResponse, error) {
	if !caller.Admin {
		return nil, ErrForbidden
	}

	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	result := make(map[string]model.UserResponse, len(users))
	for _, u := range users {
		result[u.ID] = u.ToResponse()
	}
	return result, nil
}

// GetUser returns a single user. The caller's email must match the record;
// admins get no exemption here.
func (s *UserService) GetUser(ctx context.Context, caller model.AuthClaims, id string) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, fmt.Errorf("getting user: %w", err)
	}

	if caller.Email != user.Email {
		return model.UserResponse{}, ErrNotOwner
	}

	return user.ToResponse(), nil
}

// UpdateUser replaces the name and password of a user.
func (s *UserService) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}
	if len(req.Password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	_, err = s.store.Update(ctx, id, model.UserUpdate{
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if !removed {
		return ErrUserNotFound
	}
	return nil
}
