// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator
	ids       *utils.UUIDGenerator

	// hashCost is the bcrypt cost of newly created password hashes.
	hashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	// dummyHash is compared against when the email is unknown, so both
	// login failures cost one bcrypt comparison.
	dummyHash func() []byte

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validator,
		ids:            utils.NewUUIDGenerator(),
		hashCost:       cfg.PasswordHashCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            func() time.Time { return time.Now().UTC() },
		dummyHash:      sync.OnceValue(func() []byte { return newDummyHash(cfg.PasswordHashCost) }),
		logger:         logger,
	}
}

// newDummyHash hashes a random password with the cost of real hashes.
func newDummyHash(cost int) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		hash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	}
	return hash
}

// Signup creates a new user account.
//
// The email is checked before the username, so a request colliding on both
// reports ErrEmailTaken. A duplicate that slips past the checks is caught by
// the unique indexes and reported the same way.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	req = req.Normalized()
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, fmt.Errorf("signup validation failed: %w", err)
	}

	if err := a.ensureUnique(ctx, req); err != nil {
		return models.AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.hashCost)
	if err != nil {
		log.Err(err).Str("func", "authService.Signup").Msg("password hashing failed")
		return models.AuthResult{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := a.now()
	user, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.ids.Generate(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.AuthResult{}, ErrEmailTaken
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.AuthResult{}, ErrUsernameTaken
	case err != nil:
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.AuthResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.issue(ctx, user)
}

func (a *authService) ensureUnique(ctx context.Context, req models.SignupRequest) error {
	_, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("user search by email failed: %w", err)
	}

	_, err = a.userRepository.FindUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("user search by username failed: %w", err)
	}

	return nil
}

// Login authenticates an existing user. Whether the email is unknown or the
// password is wrong, the caller only learns ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	req = req.Normalized()
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, fmt.Errorf("login validation failed: %w", err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash(), []byte(req.Password))
		log.Debug().Str("func", "authService.Login").Msg("unknown email")
		return models.AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debug().Str("user_id", user.ID.String()).Msg("wrong password")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	return a.issue(ctx, user)
}

func (a *authService) issue(ctx context.Context, user models.User) (models.AuthResult, error) {
	token, err := a.createToken(user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID.String()).Msg("token creation failed")
		return models.AuthResult{}, err
	}

	return models.AuthResult{User: user, Token: token.SignedString}, nil
}

// createToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) createToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
