package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"gigmarket/internal/common"
	"gigmarket/internal/models"
	"gigmarket/internal/repositories"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
)

const (
	maxBioLength       = 500
	maxCountryLength   = 100
	maxLanguagesLength = 200
	usernameAttempts   = 3
)

type UserService interface {
	// Store creates or refreshes the caller's user record from identity claims.
	Store(ctx context.Context, identity *common.Identity) (*models.User, error)
	Current(ctx context.Context, identity *common.Identity) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, identity *common.Identity, profile models.ProfileUpdate) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Store(ctx context.Context, identity *common.Identity) (*models.User, error) {
	email := strings.TrimSpace(identity.Email)
	if email != "" {
		if err := checkmail.ValidateFormat(email); err != nil {
			return nil, invalid("email", "invalid email format")
		}
	}

	base := baseUsername(identity.Username, email)
	username := base
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		user := &models.User{
			ID:              uuid.New(),
			Subject:         identity.Subject,
			Username:        username,
			FullName:        strings.TrimSpace(identity.Name),
			Email:           email,
			ProfileImageURL: identity.Picture,
		}
		err := s.userRepo.Upsert(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("failed to store user: %w", err)
		}
		log.Printf("DEBUG: username %q taken, retrying with a suffix", username)
		username = fmt.Sprintf("%s-%s", base, uuid.NewString()[:6])
	}
	return nil, invalid("username", "could not find a free username")
}

func (s *userService) Current(ctx context.Context, identity *common.Identity) (*models.User, error) {
	user, err := s.userRepo.GetBySubject(ctx, identity.Subject)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotStored
	}
	return user, err
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *userService) UpdateProfile(ctx context.Context, identity *common.Identity, profile models.ProfileUpdate) (*models.User, error) {
	if err := common.ValidateOptionalString(&profile.Bio, "bio", maxBioLength); err != nil {
		return nil, invalid("bio", "cannot exceed %d characters", maxBioLength)
	}
	if err := common.ValidateOptionalString(&profile.Country, "country", maxCountryLength); err != nil {
		return nil, invalid("country", "cannot exceed %d characters", maxCountryLength)
	}
	if err := common.ValidateOptionalString(&profile.Languages, "languages", maxLanguagesLength); err != nil {
		return nil, invalid("languages", "cannot exceed %d characters", maxLanguagesLength)
	}

	user, err := s.Current(ctx, identity)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateProfile(ctx, user.ID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.Bio, user.Country, user.Languages = profile.Bio, profile.Country, profile.Languages
	return user, nil
}

// baseUsername prefers the claimed username, then the email local part.
func baseUsername(claimed, email string) string {
	candidate := strings.TrimSpace(claimed)
	if candidate == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			candidate = email[:at]
		}
	}
	var b strings.Builder
	for _, r := range strings.ToLower(candidate) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-', r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
