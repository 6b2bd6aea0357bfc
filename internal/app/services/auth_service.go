package services

import (
	"context"
	"fmt"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
	"github.com/keiji0711/final-final/internal/pkg/auth"
	"github.com/keiji0711/final-final/internal/pkg/logger"
)

// AuthService handles officer authentication
type AuthService struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo *repositories.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new officer account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password, fullName string) (*models.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUsernameAlreadyUsed
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hashed,
		FullName: fullName,
		RoleType: models.RoleOfficer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repositories.ErrUsernameAlreadyUsed {
			return nil, apperrors.ErrUsernameAlreadyUsed
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, int64, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", 0, fmt.Errorf("error fetching user: %w", err)
	}
	if user == nil {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", 0, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is informational only.
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	return user, token, expiresIn, nil
}

// GetUserByID returns the account for an authenticated user ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
