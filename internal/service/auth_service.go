package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"notely/internal/auth"
	apperrors "notely/internal/errors"
	"notely/internal/model"
	"notely/internal/repository"
)

const bcryptCost = 10

// SignInResult is returned on successful authentication.
type SignInResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// AuthService handles authentication operations.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	SignOut(ctx context.Context, claims *auth.Claims) error
	UpdatePassword(ctx context.Context, actorID, userID, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// SignUp creates a new user with a hashed password. Emails are unique.
func (s *authService) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// SignIn verifies credentials and issues a session token.
func (s *authService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &SignInResult{Token: token, UserID: user.ID, Email: user.Email}, nil
}

// SignOut revokes the token described by claims until it would have expired.
func (s *authService) SignOut(ctx context.Context, claims *auth.Claims) error {
	if err := s.tokenStore.Revoke(ctx, claims.ID, claims.RemainingTTL(time.Now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// UpdatePassword replaces the user's password hash.
func (s *authService) UpdatePassword(ctx context.Context, actorID, userID, newPassword string) error {
	if userID == "" {
		return apperrors.NewValidationError("userId", "userId is required")
	}
	if newPassword == "" {
		return apperrors.NewValidationError("newPassword", "newPassword is required")
	}
	if err := authorize(actorID, userID); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
