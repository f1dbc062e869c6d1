package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"notely/internal/cache"
	apperrors "notely/internal/errors"
	"notely/internal/repository"
	"notely/internal/storage"
)

const profileImageCacheTTL = 5 * time.Minute

// UserService manages user profile data.
type UserService interface {
	UpdateProfileImage(ctx context.Context, actorID, userID string, file *Upload) (string, error)
	GetProfileImage(ctx context.Context, actorID, userID string) (string, error)
}

// Cache is the key-value cache in front of profile image lookups.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type userService struct {
	repo  repository.UserRepository
	store ObjectStore
	cache Cache
}

// NewUserService builds a UserService with repository, object store and cache.
// A nil cache disables caching.
func NewUserService(repo repository.UserRepository, store ObjectStore, c Cache) UserService {
	if c == nil {
		c = (*cache.Client)(nil)
	}
	return &userService{repo: repo, store: store, cache: c}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("profile_image:%s", id)
}

// UpdateProfileImage uploads a new profile picture and records its URL.
func (s *userService) UpdateProfileImage(ctx context.Context, actorID, userID string, file *Upload) (string, error) {
	if err := authorize(actorID, userID); err != nil {
		return "", err
	}
	if file == nil {
		return "", apperrors.NewValidationError("profileImage", "profileImage file is required")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	imageURL, err := s.store.Put(ctx, storage.PrefixProfilePictures, profileFileName(userID, file.FileName), file.Data, file.MediaType())
	if err != nil {
		return "", fmt.Errorf("upload profile image: %w", err)
	}

	if err := s.repo.UpdateProfileImage(ctx, userID, imageURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("update profile image: %w", err)
	}

	if user.ProfileImage != nil && *user.ProfileImage != imageURL {
		s.store.Delete(ctx, *user.ProfileImage)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	return imageURL, nil
}

// GetProfileImage returns the user's profile picture URL.
func (s *userService) GetProfileImage(ctx context.Context, actorID, userID string) (string, error) {
	if err := authorize(actorID, userID); err != nil {
		return "", err
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		return string(data), nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrProfileImageNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if user.ProfileImage == nil || *user.ProfileImage == "" {
		return "", apperrors.ErrProfileImageNotFound
	}

	_ = s.cache.Set(ctx, s.cacheKey(userID), []byte(*user.ProfileImage), profileImageCacheTTL)
	return *user.ProfileImage, nil
}
