// Package services contains server-side business logic. This file
// implements UserService, which handles registration, login with session
// token issuance, and profile reads and updates on top of the two-tier
// credential directory.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/talenthub/internal/common"
	"github.com/talenthub/talenthub/internal/server/auth"
	"github.com/talenthub/talenthub/internal/server/config"
	"github.com/talenthub/talenthub/internal/server/models"
	"github.com/talenthub/talenthub/internal/server/repositories/users"
)

const defaultRole = "student"

// RegisterInput carries everything a caller may supply at sign-up. Only
// FullName, Email and Password are required.
type RegisterInput struct {
	FullName       string
	Email          string
	Password       string
	Role           string
	CollegeName    string
	GraduationYear string
	Skills         []string
	LinkedinURL    string
	GithubURL      string
}

// UserService provides the authentication operations:
// - Register: validate input, create the user, mint a session token
// - Login: verify credentials and mint a session token
// - GetProfile / UpdateProfile: read and edit the profile attributes
type UserService struct {
	repo      users.Repository
	jwtSecret []byte
}

// NewUserService constructs a UserService over a credential directory
// and the server config. The signing secret is read once and never
// mutated afterwards.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

// Register creates a new user and returns it with a fresh session token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: full_name, email and password are required", common.ErrValidation)
	}
	if ok, msg := auth.ValidatePassword(in.Password); !ok {
		return nil, "", fmt.Errorf("%w: %s", common.ErrValidation, msg)
	}

	email := models.NormalizeEmail(in.Email)

	// The duplicate check spans both directory tiers; which tier answers
	// is irrelevant to the conflict.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrAlreadyExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", common.ErrStoreUnavailable
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	role := in.Role
	if role == "" {
		role = defaultRole
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   hash,
		FullName:       strings.TrimSpace(in.FullName),
		Role:           role,
		CollegeName:    in.CollegeName,
		GraduationYear: in.GraduationYear,
		Skills:         in.Skills,
		LinkedinURL:    in.LinkedinURL,
		GithubURL:      in.GithubURL,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Put(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, "", common.ErrAlreadyExists
		}
		return nil, "", common.ErrStoreUnavailable
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return user, token, nil
}

// Login verifies credentials and mints a session token. Unknown email,
// wrong password and deactivated account all report the same error, so
// a caller cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		// Burn a hash comparison so the miss costs the same as a mismatch.
		auth.CompareDummy(password)
		return nil, "", common.ErrInvalidCredentials
	}
	if !user.IsActive {
		auth.CompareDummy(password)
		return nil, "", common.ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return user, token, nil
}

// GetProfile returns the user record for an authenticated subject.
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrStoreUnavailable
	}
	return user, nil
}

// UpdateProfile applies a partial profile edit for an authenticated
// subject. Identity fields are not touchable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	if upd.FullName != nil && strings.TrimSpace(*upd.FullName) == "" {
		return nil, fmt.Errorf("%w: full_name must not be empty", common.ErrValidation)
	}

	user, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrStoreUnavailable
	}
	return user, nil
}
