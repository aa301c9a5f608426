package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/avenn/stayfinder-be/internal/apperrors"
	"github.com/avenn/stayfinder-be/internal/models"
	"github.com/avenn/stayfinder-be/internal/policy"
	"github.com/avenn/stayfinder-be/internal/storage"
)

// RegisterUserInput is the payload for self-service registration.
type RegisterUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateUserInput is the payload for admin-driven user creation. Unlike
// registration it may grant the admin role.
type CreateUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

// UpdateUserInput carries a partial user update. Nil fields are left
// untouched. Email, password and the admin flag are reserved for admins.
type UpdateUserInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, input RegisterUserInput) (models.User, error)
	Create(ctx context.Context, actor policy.Actor, input CreateUserInput) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, actor policy.Actor, id string, input UpdateUserInput) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	users  storage.UserStore
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(users storage.UserStore, events EventServiceProvider) *UserService {
	return &UserService{users: users, events: events}
}

// Register creates a regular account. The admin role can never be granted
// through this path.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (models.User, error) {
	user, err := s.createUser(ctx, input.Email, input.Password, input.FirstName, input.LastName, false)
	if err != nil {
		return models.User{}, err
	}

	s.events.CreateEvent(ctx, "user.register", "info", fmt.Sprintf("User '%s' registered.", user.Email), &user.ID)
	return user, nil
}

// Create lets an admin provision an account, optionally with the admin role.
func (s *UserService) Create(ctx context.Context, actor policy.Actor, input CreateUserInput) (models.User, error) {
	if d := policy.RequireAdmin(actor); !d.Allowed {
		return models.User{}, denyError(actor, d)
	}

	user, err := s.createUser(ctx, input.Email, input.Password, input.FirstName, input.LastName, input.IsAdmin)
	if err != nil {
		return models.User{}, err
	}

	s.events.CreateEvent(ctx, "user.create", "info", fmt.Sprintf("User '%s' was created by an admin.", user.Email), &user.ID)
	return user, nil
}

func (s *UserService) createUser(ctx context.Context, email, password, firstName, lastName string, isAdmin bool) (models.User, error) {
	if strings.TrimSpace(password) == "" {
		return models.User{}, apperrors.NewValidationError("password", "password is required")
	}

	// Optimistic pre-check; the store's unique constraint is the backstop
	// for concurrent registrations.
	if _, err := s.users.GetByEmail(ctx, normalizeEmail(email)); err == nil {
		return models.User{}, apperrors.NewConflictError("email already registered")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, apperrors.NewInternalError("failed to look up email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperrors.NewInternalError("failed to hash password", err)
	}

	user := models.User{
		Base:         models.Base{ID: uuid.New().String()},
		Email:        normalizeEmail(email),
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		IsAdmin:      isAdmin,
	}
	if err := user.Validate(); err != nil {
		return models.User{}, err
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.User{}, apperrors.NewConflictError("email already registered")
		}
		return models.User{}, apperrors.NewInternalError("failed to create user", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account on startup when no account
// uses the email yet. An existing account is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	user, err := s.createUser(ctx, email, password, "Admin", "User", true)
	if err != nil {
		return err
	}

	log.Info().Str("email", user.Email).Msg("Bootstrap admin account created")
	s.events.CreateEvent(ctx, "user.create", "info", fmt.Sprintf("Bootstrap admin '%s' was created.", user.Email), &user.ID)
	return nil
}

// Authenticate verifies a user's credentials and returns the account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperrors.NewAuthError("invalid credentials")
		}
		return models.User{}, apperrors.NewInternalError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperrors.NewAuthError("invalid credentials")
	}

	s.events.CreateEvent(ctx, "user.login", "info", fmt.Sprintf("User '%s' logged in.", user.Email), &user.ID)

	user.PasswordHash = ""
	return *user, nil
}

// GetByID retrieves a single user.
func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperrors.NewNotFoundError("user not found")
		}
		return models.User{}, apperrors.NewInternalError("failed to look up user", err)
	}

	user.PasswordHash = ""
	return *user, nil
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Update applies a partial update to a user. Regular users may only touch
// their own first and last name; admins may change anything on anyone.
func (s *UserService) Update(ctx context.Context, actor policy.Actor, id string, input UpdateUserInput) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperrors.NewNotFoundError("user not found")
		}
		return models.User{}, apperrors.NewInternalError("failed to look up user", err)
	}

	touchesProtected := input.Email != nil || input.Password != nil || input.IsAdmin != nil
	if d := policy.CanUpdateUser(actor, user.ID, touchesProtected); !d.Allowed {
		return models.User{}, denyError(actor, d)
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Password != nil {
		if strings.TrimSpace(*input.Password) == "" {
			return models.User{}, apperrors.NewValidationError("password", "password is required")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, apperrors.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = string(hashedPassword)
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := user.Validate(); err != nil {
		return models.User{}, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.User{}, apperrors.NewConflictError("email already registered")
		}
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperrors.NewNotFoundError("user not found")
		}
		return models.User{}, apperrors.NewInternalError("failed to update user", err)
	}

	s.events.CreateEvent(ctx, "user.update", "info", fmt.Sprintf("User '%s' was updated.", user.Email), &user.ID)

	user.PasswordHash = ""
	return *user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
