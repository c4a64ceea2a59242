package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// AuthService handles registration, login, and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResponse, *ServiceError)
	Login(ctx context.Context, email, password string) (*AuthResponse, *ServiceError)
	Logout(ctx context.Context, userID string) *ServiceError
}

type authServiceImpl struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, secret []byte, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		users:    users,
		sessions: sessions,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, name, email, password string) (*AuthResponse, *ServiceError) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Password hashing failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		// demo rule: admin accounts are recognized by email
		IsAdmin:   strings.Contains(strings.ToLower(email), "admin"),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			return nil, &ServiceError{StatusCode: 409, Message: "Email already exists"}
		}
		s.logger.Error("User creation failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return s.issueSession(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*AuthResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fromAppError(apperrors.ErrInvalidCredentials)
		}
		s.logger.Error("Login lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to sign in"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fromAppError(apperrors.ErrInvalidCredentials)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return s.issueSession(ctx, user)
}

func (s *authServiceImpl) Logout(ctx context.Context, userID string) *ServiceError {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.Error("Logout failed", zap.String("user_id", userID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to sign out"}
	}
	return nil
}

// issueSession generates a token and persists the session record.
func (s *authServiceImpl) issueSession(ctx context.Context, user *models.User) (*AuthResponse, *ServiceError) {
	token, err := GenerateJWT(s.secret, user.ID, user.Name, user.Email, user.IsAdmin, s.tokenTTL)
	if err != nil {
		s.logger.Error("Token generation failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to generate token"}
	}

	now := time.Now().UTC()
	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		// the token still works without the durable record
		s.logger.Warn("Failed to persist session", zap.String("user_id", user.ID), zap.Error(err))
	}

	return &AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}
