// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/metrics"
	"github.com/taibuivan/enredo/internal/platform/sec"
	"github.com/taibuivan/enredo/internal/platform/validate"
	"github.com/taibuivan/enredo/pkg/textutil"
	"github.com/taibuivan/enredo/pkg/uuid"
)

// dummyHash is compared against when the username is unknown, so that a
// missing user costs the same bcrypt work as a wrong password.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3wI.1pFVxR1e5rD6dL6K8uK"

// # Service Layer

// Service implements administrator authentication use cases.
type Service struct {
	users   UserRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users UserRepository, metrics *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		users:   users,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

/*
Login verifies credentials and returns the principal to attach to the session.
The username must match the stored one exactly, case and surrounding spaces included.

Returns:
  - *sec.Principal: The signed-in administrator
  - error: apperr.ValidationError (blank fields), apperr.Unauthorized (bad credentials)
*/
func (service *Service) Login(context context.Context, username, password string) (*sec.Principal, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, username)
	validator.Required(FieldPassword, password)
	if validator.HasErrors() {
		return nil, apperr.ValidationError(MessageMissingCredentials)
	}

	user, err := service.users.FindByUsername(context, username)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	if !sec.CheckPasswordHash(password, hash) || user == nil {
		service.metrics.LoginAttempt(metrics.LoginFailure)
		service.logger.Warn("login_failed", slog.String("username", username))
		return nil, apperr.Unauthorized(MessageInvalidCredentials)
	}

	service.metrics.LoginAttempt(metrics.LoginSuccess)
	service.logger.Info("login_succeeded", slog.String("user_id", user.ID))

	return &sec.Principal{UserID: user.ID, Username: user.Username}, nil
}

/*
CreateUser stores a new administrator with a bcrypt hash of password.
*/
func (service *Service) CreateUser(context context.Context, username, password string) (*User, error) {
	username = textutil.Normalize(username)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username)
	validator.MaxLen(FieldUsername, username, 100)
	validator.Required(FieldPassword, password)
	validator.MinLen(FieldPassword, password, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashed, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashed,
		CreatedAt:    service.now(),
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created", slog.String("user_id", user.ID), slog.String("username", username))
	return user, nil
}

/*
EnsureAdmin creates the administrator unless the username already exists.

Description: A blank password disables seeding.

Returns:
  - bool: Whether a user was created
*/
func (service *Service) EnsureAdmin(context context.Context, username, password string) (bool, error) {
	if password == "" {
		return false, nil
	}

	_, err := service.users.FindByUsername(context, textutil.Normalize(username))
	if err == nil {
		return false, nil
	}
	if !apperr.IsNotFound(err) {
		return false, err
	}

	if _, err := service.CreateUser(context, username, password); err != nil {
		return false, err
	}
	return true, nil
}
