package repositories

import (
	"context"

	"gigmarket/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	// Upsert inserts the user or refreshes identity fields of the user with the same subject.
	// The username of an existing user is never changed.
	Upsert(ctx context.Context, user *models.User) error
	GetBySubject(ctx context.Context, subject string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile models.ProfileUpdate) error
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, subject, username, full_name, email, profile_image_url, bio, country, languages, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Subject, &user.Username, &user.FullName, &user.Email, &user.ProfileImageURL, &user.Bio, &user.Country, &user.Languages, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (r *userRepo) Upsert(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, subject, username, full_name, email, profile_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (subject) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = NOW()
		RETURNING ` + userColumns
	stored, err := scanUser(r.db.QueryRow(ctx, query, user.ID, user.Subject, user.Username, user.FullName, user.Email, user.ProfileImageURL))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	*user = *stored
	return nil
}

func (r *userRepo) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE subject = $1`, subject))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *userRepo) UpdateProfile(ctx context.Context, id uuid.UUID, profile models.ProfileUpdate) error {
	query := `
		UPDATE users
		SET bio = $1, country = $2, languages = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, profile.Bio, profile.Country, profile.Languages, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
