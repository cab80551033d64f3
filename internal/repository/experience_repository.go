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

var (
	ErrEntryNotFound  = errors.New("entry not found")
	ErrEntryForbidden = errors.New("forbidden")
)

type ExperienceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Experience, error)
	FindByID(ctx context.Context, id uuid.UUID) (resume.Experience, error)
	Create(ctx context.Context, e resume.Experience) error
	Update(ctx context.Context, e resume.Experience) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type PostgresExperienceRepository struct {
	db database.DB
}

func NewPostgresExperienceRepository(db database.DB) *PostgresExperienceRepository {
	return &PostgresExperienceRepository{db: db}
}

func (r *PostgresExperienceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, company, title, started_on, ended_on, summary, position
		 FROM experiences
		 WHERE user_id = $1
		 ORDER BY position ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Experience, 0)
	for rows.Next() {
		var e resume.Experience
		if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Title, &e.StartedOn, &e.EndedOn, &e.Summary, &e.Position); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresExperienceRepository) FindByID(ctx context.Context, id uuid.UUID) (resume.Experience, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, company, title, started_on, ended_on, summary, position
		 FROM experiences WHERE id = $1`,
		id,
	)

	var e resume.Experience
	if err := row.Scan(&e.ID, &e.UserID, &e.Company, &e.Title, &e.StartedOn, &e.EndedOn, &e.Summary, &e.Position); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return resume.Experience{}, ErrEntryNotFound
		}
		return resume.Experience{}, err
	}
	return e, nil
}

func (r *PostgresExperienceRepository) Create(ctx context.Context, e resume.Experience) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO experiences (id, user_id, company, title, started_on, ended_on, summary, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.UserID, e.Company, e.Title, e.StartedOn, e.EndedOn, e.Summary, e.Position,
	)
	return err
}

func (r *PostgresExperienceRepository) Update(ctx context.Context, e resume.Experience) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE experiences
		 SET company = $1, title = $2, started_on = $3, ended_on = $4, summary = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7`,
		e.Company, e.Title, e.StartedOn, e.EndedOn, e.Summary, e.ID, e.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *PostgresExperienceRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM experiences WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrEntryNotFound
		}
		return err
	}
	if owner != userID {
		return ErrEntryForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	return err
}

func (r *PostgresExperienceRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	return updatePositions(ctx, r.db, "experiences", userID, orderedIDs)
}

// updatePositions rewrites the position column for one user's rows in a single
// transaction, shared by every ordered section table.
func updatePositions(ctx context.Context, db database.DB, table string, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for i, id := range orderedIDs {
		rowsAffected, err := tx.Exec(ctx,
			`UPDATE `+table+` SET position = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
			i, id, userID,
		)
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrEntryNotFound
		}
	}

	return tx.Commit(ctx)
}
