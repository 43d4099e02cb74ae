package repositories

import (
	"context"

	"gigmarket/internal/models"

	"github.com/google/uuid"
)

type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Skill, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type skillRepo struct {
	db Database
}

func NewSkillRepo(db Database) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, skill *models.Skill) error {
	query := `
		INSERT INTO skills (id, user_id, name, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, skill.ID, skill.UserID, skill.Name).Scan(&skill.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *skillRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Skill, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM skills
		WHERE user_id = $1
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []*models.Skill{}
	for rows.Next() {
		skill := &models.Skill{}
		if err := rows.Scan(&skill.ID, &skill.UserID, &skill.Name, &skill.CreatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

// Delete removes a skill owned by userID.
func (r *skillRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
