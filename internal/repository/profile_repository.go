package repository

import (
	"context"
	"database/sql"
	"errors"

	"beacon-port/internal/database"
	"beacon-port/internal/domain/resume"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (resume.Profile, error)
	GetBySlug(ctx context.Context, slug string) (resume.Profile, error)
	Create(ctx context.Context, p resume.Profile) error
	Update(ctx context.Context, p resume.Profile) error
	SetVisibility(ctx context.Context, userID uuid.UUID, public bool) error
	SetPhotoKey(ctx context.Context, userID uuid.UUID, photoKey string) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, full_name, headline, email, phone, blog_url, github_url, photo_key, public, slug, created_at, updated_at`

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (resume.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetBySlug(ctx context.Context, slug string) (resume.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE slug = $1`,
		slug,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p resume.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, full_name, headline, email, phone, blog_url, github_url, photo_key, public, slug)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.FullName, p.Headline, p.Email, p.Phone, p.BlogURL, p.GithubURL, p.PhotoKey, p.Public, p.Slug,
	)
	return err
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p resume.Profile) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET full_name = $1, headline = $2, email = $3, phone = $4, blog_url = $5, github_url = $6, updated_at = now()
		 WHERE user_id = $7`,
		p.FullName, p.Headline, p.Email, p.Phone, p.BlogURL, p.GithubURL, p.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) SetVisibility(ctx context.Context, userID uuid.UUID, public bool) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE profiles SET public = $1, updated_at = now() WHERE user_id = $2`,
		public, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) SetPhotoKey(ctx context.Context, userID uuid.UUID, photoKey string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE profiles SET photo_key = $1, updated_at = now() WHERE user_id = $2`,
		photoKey, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func scanProfile(row database.Row) (resume.Profile, error) {
	var p resume.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Headline, &p.Email, &p.Phone,
		&p.BlogURL, &p.GithubURL, &p.PhotoKey, &p.Public, &p.Slug,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return resume.Profile{}, ErrProfileNotFound
		}
		return resume.Profile{}, err
	}
	return p, nil
}
