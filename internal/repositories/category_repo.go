package repositories

import (
	"context"

	"gigmarket/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// seedLockKey identifies the transaction-scoped advisory lock shared by seeding and reseeding.
const seedLockKey int64 = 0x6769675f636174

type CategoryRepository interface {
	ListWithSubcategories(ctx context.Context) ([]*models.Category, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*models.Subcategory, error)
	GetSubcategory(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	SeedIfEmpty(ctx context.Context, catalog models.Catalog) (bool, error)
	Reseed(ctx context.Context, catalog models.Catalog) (models.SeedResult, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

// ListWithSubcategories reads both tables from one snapshot, categories and children in insertion order.
func (r *categoryRepo) ListWithSubcategories(ctx context.Context) ([]*models.Category, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, tx)

	rows, err := tx.Query(ctx, `
		SELECT id, name, created_at
		FROM categories
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	categories := []*models.Category{}
	byID := make(map[uuid.UUID]*models.Category)
	ids := []uuid.UUID{}
	for rows.Next() {
		c := &models.Category{Subcategories: []*models.Subcategory{}}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		categories = append(categories, c)
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return categories, nil
	}

	rows, err = tx.Query(ctx, `
		SELECT id, category_id, name
		FROM subcategories
		WHERE category_id = ANY($1)
		ORDER BY seq
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		s := &models.Subcategory{}
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, err
		}
		if parent, ok := byID[s.CategoryID]; ok {
			parent.Subcategories = append(parent.Subcategories, s)
		}
	}
	return categories, rows.Err()
}

func (r *categoryRepo) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*models.Subcategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, name
		FROM subcategories
		WHERE category_id = $1
		ORDER BY seq
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subcategories := []*models.Subcategory{}
	for rows.Next() {
		s := &models.Subcategory{}
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, s)
	}
	return subcategories, rows.Err()
}

func (r *categoryRepo) GetSubcategory(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	s := &models.Subcategory{}
	err := r.db.QueryRow(ctx, `
		SELECT id, category_id, name
		FROM subcategories
		WHERE id = $1
	`, id).Scan(&s.ID, &s.CategoryID, &s.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// SeedIfEmpty inserts the catalog when no category exists. Callers are serialized by an
// advisory lock, so exactly one of any number of concurrent callers reports true.
func (r *categoryRepo) SeedIfEmpty(ctx context.Context, catalog models.Catalog) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		rollback(ctx, tx)
		return false, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		rollback(ctx, tx)
		return false, err
	}
	if count > 0 {
		rollback(ctx, tx)
		return false, nil
	}

	if _, err := insertCatalog(ctx, tx, catalog); err != nil {
		rollback(ctx, tx)
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Reseed replaces every category and subcategory with the catalog in one transaction.
// Errors are returned as produced by the driver.
func (r *categoryRepo) Reseed(ctx context.Context, catalog models.Catalog) (models.SeedResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.SeedResult{}, err
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		rollback(ctx, tx)
		return models.SeedResult{}, err
	}
	// Subcategories first, they reference categories.
	if _, err := tx.Exec(ctx, `DELETE FROM subcategories`); err != nil {
		rollback(ctx, tx)
		return models.SeedResult{}, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM categories`); err != nil {
		rollback(ctx, tx)
		return models.SeedResult{}, err
	}

	result, err := insertCatalog(ctx, tx, catalog)
	if err != nil {
		rollback(ctx, tx)
		return models.SeedResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.SeedResult{}, err
	}
	return result, nil
}

// insertCatalog writes all categories in catalog order, then each category's subcategories
// under the id captured for it.
func insertCatalog(ctx context.Context, tx pgx.Tx, catalog models.Catalog) (models.SeedResult, error) {
	var result models.SeedResult
	ids := make([]uuid.UUID, len(catalog.Categories))
	for i, category := range catalog.Categories {
		ids[i] = uuid.New()
		if _, err := tx.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2)`, ids[i], category.Name); err != nil {
			return result, err
		}
		result.CategoriesSeeded++
	}
	for i, category := range catalog.Categories {
		for _, name := range category.Subcategories {
			if _, err := tx.Exec(ctx, `INSERT INTO subcategories (id, category_id, name) VALUES ($1, $2, $3)`, uuid.New(), ids[i], name); err != nil {
				return result, err
			}
			result.SubcategoriesSeeded++
		}
	}
	return result, nil
}
