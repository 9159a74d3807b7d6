package handlers

import (
	"context"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/services"
)

// AuthServiceInterface defines auth operations used by handlers. Handlers
// for authed proxy routes also use it to resolve the session's upstream
// bearer token.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*services.LoginResponse, error)
	Register(ctx context.Context, name, email, phone, password string) (*services.LoginResponse, error)
	GetProfile(ctx context.Context, sessionID string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, sessionID string, profile models.UserProfile) (*models.UserProfile, error)
	RefreshToken(refreshToken string) (string, error)
	UpstreamToken(ctx context.Context, sessionID string) (string, error)
	Logout(ctx context.Context, sessionID string) error
}
