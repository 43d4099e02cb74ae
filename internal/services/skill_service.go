package services

import (
	"context"
	"errors"
	"strings"

	"gigmarket/internal/common"
	"gigmarket/internal/models"
	"gigmarket/internal/repositories"

	"github.com/google/uuid"
)

const maxSkillLength = 50

type SkillService interface {
	// ListByUsername returns [] for anonymous callers and unknown users.
	ListByUsername(ctx context.Context, identity *common.Identity, username string) ([]*models.Skill, error)
	Add(ctx context.Context, identity *common.Identity, name string) (*models.Skill, error)
	Remove(ctx context.Context, identity *common.Identity, skillID uuid.UUID) error
}

type skillService struct {
	skillRepo repositories.SkillRepository
	userRepo  repositories.UserRepository
}

func NewSkillService(skillRepo repositories.SkillRepository, userRepo repositories.UserRepository) SkillService {
	return &skillService{skillRepo: skillRepo, userRepo: userRepo}
}

func (s *skillService) ListByUsername(ctx context.Context, identity *common.Identity, username string) ([]*models.Skill, error) {
	if identity == nil {
		return []*models.Skill{}, nil
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return []*models.Skill{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.skillRepo.ListByUserID(ctx, user.ID)
}

func (s *skillService) Add(ctx context.Context, identity *common.Identity, name string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len([]rune(name)) > maxSkillLength {
		return nil, invalid("name", "cannot exceed %d characters", maxSkillLength)
	}

	user, err := s.owner(ctx, identity)
	if err != nil {
		return nil, err
	}
	skill := &models.Skill{ID: uuid.New(), UserID: user.ID, Name: name}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateSkill
		}
		return nil, err
	}
	return skill, nil
}

func (s *skillService) Remove(ctx context.Context, identity *common.Identity, skillID uuid.UUID) error {
	user, err := s.owner(ctx, identity)
	if err != nil {
		return err
	}
	err = s.skillRepo.Delete(ctx, user.ID, skillID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrSkillNotFound
	}
	return err
}

func (s *skillService) owner(ctx context.Context, identity *common.Identity) (*models.User, error) {
	user, err := s.userRepo.GetBySubject(ctx, identity.Subject)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotStored
	}
	return user, err
}
