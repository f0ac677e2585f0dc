// Package services contains server-side business logic. This file implements
// UserService: registration, credential verification, and resolving a session
// email back to a user id.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sooratali/TaskManager/internal/common"
	"github.com/sooratali/TaskManager/internal/server/models"
	"github.com/sooratali/TaskManager/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt-hashed credential
// - Authenticate: verify credentials
// - ResolveSession: map a session email to a user id
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the given connection and
// repository manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// NormalizeEmail trims whitespace and lower-cases an email address. Every
// lookup and insert goes through the same normalization.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user and returns its id. The email must not already
// be registered; the raw password is hashed with bcrypt and never stored.
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return "", common.ErrorDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	if _, err := repo.Create(ctx, user); err != nil {
		// The unique constraint can still fire if a concurrent registration
		// slipped past the lookup above.
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return "", common.ErrorDuplicateEmail
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// Authenticate verifies the credentials and returns the user id. Unknown
// email and wrong password produce the same ErrorInvalidCredentials so the
// response does not reveal whether the account exists. bcrypt performs the
// hash comparison in constant time.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", common.ErrorInvalidCredentials
	}

	return user.ID, nil
}

// ResolveSession maps the email carried by a verified session token back to
// a user id. A missing or stale email yields ErrorUnauthenticated.
func (s *UserService) ResolveSession(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", common.ErrorUnauthenticated
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthenticated
		}
		return "", common.ErrorInternal
	}

	return user.ID, nil
}
