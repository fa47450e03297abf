package services

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pos-backend/models"
	"pos-backend/repository"
)

// AuthService defines the business logic for registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password string) *ServiceError
	Login(ctx context.Context, username, password string) (string, *ServiceError)
}

type authServiceImpl struct {
	users  repository.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, tokens: tokens, logger: logger}
}

// Register stores a new user with a bcrypt hash of the password. A taken
// username is answered with a conflict; the unique index on username catches
// the race where two registrations pass the existence check together.
func (s *authServiceImpl) Register(ctx context.Context, username, password string) *ServiceError {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to check username", zap.String("username", username), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register user"}
	}
	if exists {
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "Username already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to hash password"}
	}

	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return &ServiceError{StatusCode: http.StatusBadRequest, Message: "Username already exists"}
		}
		s.logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register user"}
	}

	s.logger.Info("User registered", zap.String("username", username))
	return nil
}

// Login verifies the password against the stored hash and issues a token.
// Unknown user and wrong password give the same answer.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, *ServiceError) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid username or password"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid username or password"}
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.String("username", username), zap.Error(err))
		return "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to generate token"}
	}
	return token, nil
}
