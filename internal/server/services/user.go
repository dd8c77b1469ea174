// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and bearer token
// verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"facultydesk/internal/common"
	"facultydesk/internal/server/auth"
	"facultydesk/internal/server/config"
	"facultydesk/internal/server/models"
	"facultydesk/internal/server/repositories/repomanager"
)

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account with a bcrypt-hashed password. The email must
// be unused; a taken address fails with common.ErrEmailTaken. No token is
// issued on registration, login is a separate step.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a signed, time-limited bearer
// token. Unknown email and wrong password both fail with
// common.ErrInvalidCredentials so the response does not leak which one it was.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// VerifyToken validates a bearer token and returns the user id it carries.
func (s *UserService) VerifyToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
