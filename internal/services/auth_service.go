package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-food-gateway/internal/models"
	"golang-food-gateway/internal/upstream"
	"golang-food-gateway/pkg/auth"
	"golang-food-gateway/pkg/storage"

	"github.com/google/uuid"
)

// AuthAPI is the slice of the upstream client the auth service consumes
type AuthAPI interface {
	Login(ctx context.Context, creds upstream.Credentials) (*upstream.AuthResult, error)
	Register(ctx context.Context, reg upstream.Registration) (*upstream.AuthResult, error)
	GetProfile(ctx context.Context, token string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, token string, profile models.UserProfile) (*models.UserProfile, error)
}

var ErrSessionExpired = errors.New("session expired, please login again")

// Sessions outlive the refresh token by a margin so refresh always finds a
// live upstream token
const sessionTTL = 31 * 24 * time.Hour

type LoginResponse struct {
	User   models.UserProfile `json:"user"`
	Tokens auth.TokenPair     `json:"tokens"`
}

// AuthService proxies credentials to the upstream and manages gateway
// sessions. The upstream bearer token is kept server side in the session
// store; clients only ever hold the gateway's own JWT pair.
type AuthService struct {
	api        AuthAPI
	jwtManager *auth.JWTManager
	store      storage.Store
}

func NewAuthService(api AuthAPI, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		api:        api,
		jwtManager: jwtManager,
		store:      store,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *AuthService) createSession(ctx context.Context, result *upstream.AuthResult) (*LoginResponse, error) {
	sessionID := uuid.NewString()
	if err := s.store.Set(ctx, sessionKey(sessionID), result.Token, sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	tokens, err := s.jwtManager.GenerateTokenPair(fmt.Sprintf("%d", result.User.ID), sessionID, result.User.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{User: result.User, Tokens: *tokens}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	result, err := s.api.Login(ctx, upstream.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.createSession(ctx, result)
}

func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (*LoginResponse, error) {
	result, err := s.api.Register(ctx, upstream.Registration{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return s.createSession(ctx, result)
}

// UpstreamToken resolves a session to its stored upstream bearer token.
// Every authed proxy call goes through here.
func (s *AuthService) UpstreamToken(ctx context.Context, sessionID string) (string, error) {
	var token string
	if err := s.store.Get(ctx, sessionKey(sessionID), &token); err != nil {
		if err == storage.ErrNotFound {
			return "", ErrSessionExpired
		}
		return "", err
	}
	return token, nil
}

func (s *AuthService) GetProfile(ctx context.Context, sessionID string) (*models.UserProfile, error) {
	token, err := s.UpstreamToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.GetProfile(ctx, token)
}

func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, profile models.UserProfile) (*models.UserProfile, error) {
	token, err := s.UpstreamToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateProfile(ctx, token, profile)
}

func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	return s.jwtManager.RefreshAccessToken(refreshToken)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionKey(sessionID))
}
