// Package services contains the typed API surface of the gymtrack backend,
// one service per resource family. Each service is a thin wrapper over the
// request pipeline; session state handling lives in the session package.
package services

import (
	"context"
	"encoding/json"
	"net/http"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
)

// AuthService talks to the /auth endpoints. Login and Register return the
// raw response body rather than a decoded struct: the session store runs the
// multi-shape credential extraction over it, and callers may need
// response fields this client does not model.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (json.RawMessage, error)
	Register(ctx context.Context, reg models.Registration) (json.RawMessage, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

type authService struct {
	api *api.Client
}

// NewAuthService constructs an AuthService bound to the given pipeline.
func NewAuthService(c *api.Client) AuthService {
	return &authService{api: c}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (json.RawMessage, error) {
	return s.api.Do(ctx, http.MethodPost, "/api/v1/auth/login", nil, creds)
}

func (s *authService) Register(ctx context.Context, reg models.Registration) (json.RawMessage, error) {
	return s.api.Do(ctx, http.MethodPost, "/api/v1/auth/register", nil, reg)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	body := models.ForgotPasswordRequest{Email: email}
	return s.api.Send(ctx, http.MethodPost, "/api/v1/auth/forgot-password", nil, body, nil)
}

func (s *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return s.api.Send(ctx, http.MethodPost, "/api/v1/auth/reset-password", nil, req, nil)
}
