package repositories

import (
	"context"

	"gigmarket/internal/models"

	"github.com/google/uuid"
)

type GigImageRepository interface {
	Create(ctx context.Context, image *models.GigImage) error
	ListByGigID(ctx context.Context, gigID uuid.UUID) ([]*models.GigImage, error)
	DeleteAllByGigID(ctx context.Context, gigID uuid.UUID) error
}

type gigImageRepo struct {
	db Database
}

func NewGigImageRepo(db Database) GigImageRepository {
	return &gigImageRepo{db: db}
}

func (r *gigImageRepo) Create(ctx context.Context, image *models.GigImage) error {
	query := `
		INSERT INTO gig_images (id, gig_id, object_key, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return r.db.QueryRow(ctx, query, image.ID, image.GigID, image.ObjectKey).Scan(&image.CreatedAt)
}

func (r *gigImageRepo) ListByGigID(ctx context.Context, gigID uuid.UUID) ([]*models.GigImage, error) {
	query := `
		SELECT id, gig_id, object_key, created_at
		FROM gig_images
		WHERE gig_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, gigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []*models.GigImage{}
	for rows.Next() {
		image := &models.GigImage{}
		if err := rows.Scan(&image.ID, &image.GigID, &image.ObjectKey, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *gigImageRepo) DeleteAllByGigID(ctx context.Context, gigID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM gig_images WHERE gig_id = $1`, gigID)
	return err
}
