package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/buchshelf/buchshelf-server/internal/domain"
	"github.com/buchshelf/buchshelf-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/signup",
		Summary:     "Create account",
		Description: "Creates a local account and logs it in. Email and username must be unique.",
		Tags:        []string{"Authentication"},
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Clears the session. The account and its library are kept.",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-current-account",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current account",
		Tags:        []string{"Authentication"},
	}, s.handleCurrentAccount)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/auth/profile",
		Summary:     "Update profile",
		Description: "Changes email and/or username of the logged-in account.",
		Tags:        []string{"Authentication"},
	}, s.handleUpdateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-password",
		Method:      http.MethodPut,
		Path:        "/api/v1/auth/password",
		Summary:     "Change password",
		Tags:        []string{"Authentication"},
	}, s.handleUpdatePassword)
}

// === DTOs ===

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Email    string `json:"email" doc:"Account email, unique"`
	Username string `json:"username" doc:"Display name, unique"`
	Password string `json:"password" doc:"Account password"`
}

// SignupInput wraps the signup request.
type SignupInput struct {
	Body SignupRequest
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" doc:"Account email"`
	Password string `json:"password" doc:"Account password"`
}

// LoginInput wraps the login request.
type LoginInput struct {
	Body LoginRequest
}

// UpdateProfileRequest carries profile changes; empty fields stay unchanged.
type UpdateProfileRequest struct {
	Email    string `json:"email,omitempty" doc:"New email"`
	Username string `json:"username,omitempty" doc:"New username"`
}

// UpdateProfileInput wraps the profile request.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

// UpdatePasswordRequest carries a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" doc:"Current password"`
	NewPassword     string `json:"new_password" doc:"New password"`
}

// UpdatePasswordInput wraps the password request.
type UpdatePasswordInput struct {
	Body UpdatePasswordRequest
}

// AccountResponse contains account information. The password hash never
// leaves the server.
type AccountResponse struct {
	ID        string    `json:"id" doc:"Account ID"`
	Email     string    `json:"email" doc:"Account email"`
	Username  string    `json:"username" doc:"Account username"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// AccountOutput wraps an account response.
type AccountOutput struct {
	Body AccountResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps a message response.
type MessageOutput struct {
	Body MessageResponse
}

func mapAccount(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*AccountOutput, error) {
	account, err := s.services.Auth.Signup(ctx, service.SignupRequest{
		Email:    input.Body.Email,
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return &AccountOutput{Body: mapAccount(account)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AccountOutput, error) {
	account, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return &AccountOutput{Body: mapAccount(account)}, nil
}

func (s *Server) handleLogout(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}

func (s *Server) handleCurrentAccount(ctx context.Context, _ *struct{}) (*AccountOutput, error) {
	account, err := s.services.Auth.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountOutput{Body: mapAccount(account)}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*AccountOutput, error) {
	account, err := s.services.Auth.UpdateProfile(ctx, service.UpdateProfileRequest{
		Email:    input.Body.Email,
		Username: input.Body.Username,
	})
	if err != nil {
		return nil, err
	}
	return &AccountOutput{Body: mapAccount(account)}, nil
}

func (s *Server) handleUpdatePassword(ctx context.Context, input *UpdatePasswordInput) (*MessageOutput, error) {
	err := s.services.Auth.UpdatePassword(ctx, service.UpdatePasswordRequest{
		CurrentPassword: input.Body.CurrentPassword,
		NewPassword:     input.Body.NewPassword,
	})
	if err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "password updated"}}, nil
}
