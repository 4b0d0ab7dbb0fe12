// Package service holds the business rules of the app. Services sit between
// the HTTP handlers and the repositories:
//
//	Handler (HTTP) → Service (rules, validation) → Repository (storage)
//
// Services never touch http.Request or cookies. They report rule violations
// as *apperror.AppError and wrap infrastructure failures with context.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/auth"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

const (
	MinPasswordLength = 6
	MaxNameLength     = 100

	minSearchQuery   = 2
	maxSearchResults = 10
)

var errInvalidCredentials = apperror.Unauthorized("invalid email or password")

// AuthService registers and logs in users and issues their session tokens.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user with a freshly signed session token so the
// handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.UserRole
}

// Register creates an account and signs the new user in. Role defaults to
// student. A taken email is reported as a conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or fewer", MaxNameLength))
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, apperror.ValidationFailed("email", "a valid email is required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	role := in.Role
	if role == "" {
		role = model.RoleStudent
	}
	if !role.Valid() {
		return nil, apperror.ValidationFailed("role", "role must be student, mentor or admin")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating user %s: %w", email, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("role", string(user.Role)),
	)
	return s.issue(user)
}

// Login checks the credentials. Unknown emails and wrong passwords produce
// the same error so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, errInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("service/auth: looking up %s: %w", email, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Debug("login rejected", slog.String("userID", user.ID))
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))
	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Me returns the signed-in user's record.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, opts repository.ListOptions) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("service/auth: listing users: %w", err)
	}
	return users, nil
}

// SearchUsers matches name or email. Queries shorter than two characters
// return an empty list without touching the store.
func (s *AuthService) SearchUsers(ctx context.Context, query string) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSearchQuery {
		return []model.User{}, nil
	}
	users, err := s.users.SearchUsers(ctx, query, maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("service/auth: searching users: %w", err)
	}
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
