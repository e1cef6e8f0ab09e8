// Package service implements the application's use cases on top of the store
// and the catalog client.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/buchshelf/buchshelf-server/internal/auth"
	"github.com/buchshelf/buchshelf-server/internal/domain"
	domainerrors "github.com/buchshelf/buchshelf-server/internal/errors"
	"github.com/buchshelf/buchshelf-server/internal/id"
	"github.com/buchshelf/buchshelf-server/internal/store"
	"github.com/buchshelf/buchshelf-server/internal/validation"
)

// AuthService manages the local account directory and the session pointer.
// Accounts exist to namespace library data, not to provide security; still,
// passwords are hashed at rest.
type AuthService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(s *store.Store, v *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     s,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// SignupRequest contains new account data.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// LoginRequest contains account credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries profile changes. Empty fields are unchanged.
type UpdateProfileRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
}

// UpdatePasswordRequest carries a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=1024"`
}

// Signup creates a new account and logs it in. Email and username must be
// unique across the directory.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*domain.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.Accounts.GetByIndex(ctx, "email", req.Email); err == nil {
		return nil, domainerrors.DuplicateEmail("email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.store.Accounts.GetByIndex(ctx, "username", req.Username); err == nil {
		return nil, domainerrors.DuplicateUsername("username already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	accountID, err := id.Generate("acct")
	if err != nil {
		return nil, fmt.Errorf("generate account ID: %w", err)
	}

	now := s.now().UTC()
	account := &domain.Account{
		ID:           accountID,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Accounts.Create(ctx, accountID, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.DuplicateEmail("email already registered")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	// Signup logs the new account in immediately.
	if err := s.store.SetSession(&domain.Session{AccountID: accountID, LoggedInAt: now}); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}

	s.logger.Info("account created",
		"account_id", accountID,
		"username", account.Username,
	)

	return account, nil
}

// Login verifies credentials and records the session. A wrong email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*domain.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	account, err := s.store.Accounts.GetByIndex(ctx, "email", req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !auth.VerifyPassword(account.PasswordHash, req.Password) {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	if err := s.store.SetSession(&domain.Session{AccountID: account.ID, LoggedInAt: s.now().UTC()}); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}

	s.logger.Info("logged in", "account_id", account.ID)
	return account, nil
}

// Logout clears the session pointer. The account and its library survive.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentAccount returns the logged-in account, or a not-authenticated error.
func (s *AuthService) CurrentAccount(ctx context.Context) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session, err := s.store.CurrentSession()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotAuthenticated("not authenticated")
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	account, err := s.store.Accounts.Get(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Stale pointer to a deleted account.
			_ = s.store.ClearSession()
			return nil, domainerrors.NotAuthenticated("not authenticated")
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	return account, nil
}

// Identity returns the key that namespaces library data: the account ID when
// logged in, the guest sentinel otherwise.
func (s *AuthService) Identity(ctx context.Context) (string, error) {
	account, err := s.CurrentAccount(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotAuthenticated) {
			return domain.GuestIdentity, nil
		}
		return "", err
	}
	return account.ID, nil
}

// UpdateProfile changes the email and/or username of the logged-in account,
// enforcing the same uniqueness rules as signup.
func (s *AuthService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	account, err := s.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Email != "" && req.Email != account.Email {
		if other, err := s.store.Accounts.GetByIndex(ctx, "email", req.Email); err == nil && other.ID != account.ID {
			return nil, domainerrors.DuplicateEmail("email already registered")
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		account.Email = req.Email
		changed = true
	}
	if req.Username != "" && req.Username != account.Username {
		if other, err := s.store.Accounts.GetByIndex(ctx, "username", req.Username); err == nil && other.ID != account.ID {
			return nil, domainerrors.DuplicateUsername("username already taken")
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("check username: %w", err)
		}
		account.Username = req.Username
		changed = true
	}

	if !changed {
		return account, nil
	}

	account.UpdatedAt = s.now().UTC()
	if err := s.store.Accounts.Update(ctx, account.ID, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.DuplicateEmail("email already registered")
		}
		return nil, fmt.Errorf("update account: %w", err)
	}

	s.logger.Info("profile updated", "account_id", account.ID)
	return account, nil
}

// UpdatePassword changes the password of the logged-in account after
// verifying the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	account, err := s.CurrentAccount(ctx)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(account.PasswordHash, req.CurrentPassword) {
		return domainerrors.WrongPassword("current password is incorrect")
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account.PasswordHash = passwordHash
	account.UpdatedAt = s.now().UTC()
	if err := s.store.Accounts.Update(ctx, account.ID, account); err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	s.logger.Info("password updated", "account_id", account.ID)
	return nil
}
