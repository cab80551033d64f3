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

// The four skill-free résumé sections share the same CRUD shape, so their
// repositories live together here.

type EducationRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Education, error)
	Create(ctx context.Context, e resume.Education) error
	Update(ctx context.Context, e resume.Education) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type CertificationRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Certification, error)
	Create(ctx context.Context, c resume.Certification) error
	Update(ctx context.Context, c resume.Certification) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type LanguageScoreRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.LanguageScore, error)
	Create(ctx context.Context, l resume.LanguageScore) error
	Update(ctx context.Context, l resume.LanguageScore) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type ActivityRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Activity, error)
	Create(ctx context.Context, a resume.Activity) error
	Update(ctx context.Context, a resume.Activity) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

func deleteOwned(ctx context.Context, db database.DB, table string, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := db.QueryRow(ctx, `SELECT user_id FROM `+table+` WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrEntryNotFound
		}
		return err
	}
	if owner != userID {
		return ErrEntryForbidden
	}

	_, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	return err
}

type PostgresEducationRepository struct {
	db database.DB
}

func NewPostgresEducationRepository(db database.DB) *PostgresEducationRepository {
	return &PostgresEducationRepository{db: db}
}

func (r *PostgresEducationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, school, degree, major, started_on, ended_on, position
		 FROM educations WHERE user_id = $1 ORDER BY position ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Education, 0)
	for rows.Next() {
		var e resume.Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.School, &e.Degree, &e.Major, &e.StartedOn, &e.EndedOn, &e.Position); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEducationRepository) Create(ctx context.Context, e resume.Education) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO educations (id, user_id, school, degree, major, started_on, ended_on, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.UserID, e.School, e.Degree, e.Major, e.StartedOn, e.EndedOn, e.Position,
	)
	return err
}

func (r *PostgresEducationRepository) Update(ctx context.Context, e resume.Education) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE educations
		 SET school = $1, degree = $2, major = $3, started_on = $4, ended_on = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7`,
		e.School, e.Degree, e.Major, e.StartedOn, e.EndedOn, e.ID, e.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *PostgresEducationRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return deleteOwned(ctx, r.db, "educations", id, userID)
}

func (r *PostgresEducationRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	return updatePositions(ctx, r.db, "educations", userID, orderedIDs)
}

type PostgresCertificationRepository struct {
	db database.DB
}

func NewPostgresCertificationRepository(db database.DB) *PostgresCertificationRepository {
	return &PostgresCertificationRepository{db: db}
}

func (r *PostgresCertificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Certification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, issuer, issued_on, position
		 FROM certifications WHERE user_id = $1 ORDER BY position ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Certification, 0)
	for rows.Next() {
		var c resume.Certification
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Issuer, &c.IssuedOn, &c.Position); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCertificationRepository) Create(ctx context.Context, c resume.Certification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO certifications (id, user_id, name, issuer, issued_on, position)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.Name, c.Issuer, c.IssuedOn, c.Position,
	)
	return err
}

func (r *PostgresCertificationRepository) Update(ctx context.Context, c resume.Certification) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE certifications
		 SET name = $1, issuer = $2, issued_on = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5`,
		c.Name, c.Issuer, c.IssuedOn, c.ID, c.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *PostgresCertificationRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return deleteOwned(ctx, r.db, "certifications", id, userID)
}

func (r *PostgresCertificationRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	return updatePositions(ctx, r.db, "certifications", userID, orderedIDs)
}

type PostgresLanguageScoreRepository struct {
	db database.DB
}

func NewPostgresLanguageScoreRepository(db database.DB) *PostgresLanguageScoreRepository {
	return &PostgresLanguageScoreRepository{db: db}
}

func (r *PostgresLanguageScoreRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.LanguageScore, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, test_name, score, taken_on, position
		 FROM language_scores WHERE user_id = $1 ORDER BY position ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.LanguageScore, 0)
	for rows.Next() {
		var l resume.LanguageScore
		if err := rows.Scan(&l.ID, &l.UserID, &l.TestName, &l.Score, &l.TakenOn, &l.Position); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresLanguageScoreRepository) Create(ctx context.Context, l resume.LanguageScore) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO language_scores (id, user_id, test_name, score, taken_on, position)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.UserID, l.TestName, l.Score, l.TakenOn, l.Position,
	)
	return err
}

func (r *PostgresLanguageScoreRepository) Update(ctx context.Context, l resume.LanguageScore) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE language_scores
		 SET test_name = $1, score = $2, taken_on = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5`,
		l.TestName, l.Score, l.TakenOn, l.ID, l.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *PostgresLanguageScoreRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return deleteOwned(ctx, r.db, "language_scores", id, userID)
}

func (r *PostgresLanguageScoreRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	return updatePositions(ctx, r.db, "language_scores", userID, orderedIDs)
}

type PostgresActivityRepository struct {
	db database.DB
}

func NewPostgresActivityRepository(db database.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.Activity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, body, started_on, ended_on, position
		 FROM activities WHERE user_id = $1 ORDER BY position ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Activity, 0)
	for rows.Next() {
		var a resume.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Body, &a.StartedOn, &a.EndedOn, &a.Position); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresActivityRepository) Create(ctx context.Context, a resume.Activity) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO activities (id, user_id, title, body, started_on, ended_on, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.Title, a.Body, a.StartedOn, a.EndedOn, a.Position,
	)
	return err
}

func (r *PostgresActivityRepository) Update(ctx context.Context, a resume.Activity) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE activities
		 SET title = $1, body = $2, started_on = $3, ended_on = $4, updated_at = now()
		 WHERE id = $5 AND user_id = $6`,
		a.Title, a.Body, a.StartedOn, a.EndedOn, a.ID, a.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *PostgresActivityRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return deleteOwned(ctx, r.db, "activities", id, userID)
}

func (r *PostgresActivityRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	return updatePositions(ctx, r.db, "activities", userID, orderedIDs)
}
