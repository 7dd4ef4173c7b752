package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hradmin/internal/domain/shared"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	Store  StoreAPI
	Secret string
	TTL    time.Duration
	Logger *zap.Logger
}

func NewService(store StoreAPI, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Store: store, Secret: secret, TTL: ttl, Logger: logger}
}

// Login verifies the credentials and returns a signed token for the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.Store.FindByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, s.TTL)
	if err != nil {
		return "", User{}, err
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		s.Logger.Warn("update last_login failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return token, user, nil
}

// EnsureUser creates the user unless one with the email already exists.
func (s *Service) EnsureUser(ctx context.Context, name, email, password, role string) (bool, error) {
	if _, err := s.Store.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := s.Store.Create(ctx, name, email, hash, role); err != nil {
		return false, err
	}
	return true, nil
}
