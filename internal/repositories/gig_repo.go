package repositories

import (
	"context"
	"fmt"
	"strings"

	"gigmarket/internal/models"

	"github.com/google/uuid"
)

type GigRepository interface {
	Create(ctx context.Context, gig *models.Gig) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	Update(ctx context.Context, gig *models.Gig) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	IncrementClicks(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context, filter models.GigFilter) ([]*models.Gig, error)
	AddFavorite(ctx context.Context, userID, gigID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, gigID uuid.UUID) error
}

type gigRepo struct {
	db Database
}

func NewGigRepo(db Database) GigRepository {
	return &gigRepo{db: db}
}

const gigColumns = `g.id, g.seller_id, g.subcategory_id, g.title, g.description, g.price, g.published, g.clicks, g.created_at, g.updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGig(row scanner) (*models.Gig, error) {
	gig := &models.Gig{}
	err := row.Scan(&gig.ID, &gig.SellerID, &gig.SubcategoryID, &gig.Title, &gig.Description, &gig.Price, &gig.Published, &gig.Clicks, &gig.CreatedAt, &gig.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return gig, nil
}

func (r *gigRepo) Create(ctx context.Context, gig *models.Gig) error {
	query := `
		INSERT INTO gigs (id, seller_id, subcategory_id, title, description, price, published, clicks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, 0, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, gig.ID, gig.SellerID, gig.SubcategoryID, gig.Title, gig.Description, gig.Price).
		Scan(&gig.CreatedAt, &gig.UpdatedAt)
}

func (r *gigRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs g WHERE g.id = $1`
	gig, err := scanGig(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return gig, nil
}

func (r *gigRepo) Update(ctx context.Context, gig *models.Gig) error {
	query := `
		UPDATE gigs
		SET subcategory_id = $1, title = $2, description = $3, price = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, gig.SubcategoryID, gig.Title, gig.Description, gig.Price, gig.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gigRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE gigs SET published = $1, updated_at = NOW() WHERE id = $2`, published, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gigRepo) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE gigs SET clicks = clicks + 1 WHERE id = $1`, id)
	return err
}

func (r *gigRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM gigs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublished returns published gigs matching the filter, newest first.
func (r *gigRepo) ListPublished(ctx context.Context, filter models.GigFilter) ([]*models.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs g`
	var args []interface{}
	conditionCount := 0

	if filter.CategoryName != "" {
		conditionCount++
		query += fmt.Sprintf(`
		JOIN subcategories s ON s.id = g.subcategory_id
		JOIN categories c ON c.id = s.category_id AND c.name = $%d`, conditionCount)
		args = append(args, filter.CategoryName)
	}
	if filter.FavoritesOf != nil {
		conditionCount++
		query += fmt.Sprintf(`
		JOIN favorites f ON f.gig_id = g.id AND f.user_id = $%d`, conditionCount)
		args = append(args, *filter.FavoritesOf)
	}

	query += ` WHERE g.published = TRUE`
	if filter.Search != "" {
		conditionCount++
		query += fmt.Sprintf(` AND g.title ILIKE $%d`, conditionCount)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}

	query += ` ORDER BY g.created_at DESC, g.id DESC`
	conditionCount++
	query += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	conditionCount++
	query += fmt.Sprintf(` OFFSET $%d`, conditionCount)
	args = append(args, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gigs := []*models.Gig{}
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, err
		}
		gigs = append(gigs, gig)
	}
	return gigs, rows.Err()
}

func (r *gigRepo) AddFavorite(ctx context.Context, userID, gigID uuid.UUID) error {
	query := `
		INSERT INTO favorites (user_id, gig_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, gig_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, gigID)
	return err
}

func (r *gigRepo) RemoveFavorite(ctx context.Context, userID, gigID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND gig_id = $2`, userID, gigID)
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
