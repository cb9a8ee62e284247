package domain

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher is the opaque hash/verify capability used for account
// passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// AccountService manages registration, authentication and account removal.
type AccountService struct {
	users  UserRepository
	hasher PasswordHasher
	now    func() time.Time
}

// NewAccountService constructs an AccountService.
func NewAccountService(users UserRepository, hasher PasswordHasher) *AccountService {
	return &AccountService{users: users, hasher: hasher, now: time.Now}
}

// RegisterInput captures a registration request.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (in RegisterInput) validate() error {
	var fields []FieldError
	if strings.TrimSpace(in.Username) == "" {
		fields = append(fields, FieldError{Field: "username", Message: "is required"})
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(in.Password) < MinPasswordLength {
		fields = append(fields, FieldError{Field: "password", Message: ErrWeakPassword.Error()})
	}
	if in.Password != in.ConfirmPassword {
		fields = append(fields, FieldError{Field: "confirm_password", Message: "must match password"})
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// Register creates a new account. Username and email uniqueness is enforced
// by the repository, surfaced as ErrUsernameTaken / ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: digest,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials and returns the matching account. Every
// failure mode collapses into ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// DeleteUser removes an account and, by cascade, its sessions, workouts and
// sets. Admin only, and never the admin's own account.
func (s *AccountService) DeleteUser(ctx context.Context, actor Actor, targetUserID string) error {
	if !actor.Admin {
		return ErrForbidden
	}
	if targetUserID == actor.UserID {
		return ErrSelfDeletion
	}
	return s.users.DeleteUser(ctx, targetUserID)
}

// ListUsers returns all accounts. Admin only.
func (s *AccountService) ListUsers(ctx context.Context, actor Actor) ([]User, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	return s.users.ListUsers(ctx)
}
