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

type SideProjectRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.SideProject, error)
	FindByID(ctx context.Context, id uuid.UUID) (resume.SideProject, error)
	Create(ctx context.Context, p resume.SideProject) error
	Update(ctx context.Context, p resume.SideProject) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type PostgresSideProjectRepository struct {
	db database.DB
}

func NewPostgresSideProjectRepository(db database.DB) *PostgresSideProjectRepository {
	return &PostgresSideProjectRepository{db: db}
}

func (r *PostgresSideProjectRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]resume.SideProject, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, url, started_on, ended_on, summary, position
		 FROM side_projects
		 WHERE user_id = $1
		 ORDER BY position ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.SideProject, 0)
	for rows.Next() {
		var p resume.SideProject
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.URL, &p.StartedOn, &p.EndedOn, &p.Summary, &p.Position); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSideProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (resume.SideProject, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, url, started_on, ended_on, summary, position
		 FROM side_projects WHERE id = $1`,
		id,
	)

	var p resume.SideProject
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.URL, &p.StartedOn, &p.EndedOn, &p.Summary, &p.Position); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return resume.SideProject{}, ErrEntryNotFound
		}
		return resume.SideProject{}, err
	}
	return p, nil
}

func (r *PostgresSideProjectRepository) Create(ctx context.Context, p resume.SideProject) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO side_projects (id, user_id, name, url, started_on, ended_on, summary, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.Name, p.URL, p.StartedOn, p.EndedOn, p.Summary, p.Position,
	)
	return err
}

func (r *PostgresSideProjectRepository) Update(ctx context.Context, p resume.SideProject) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE side_projects
		 SET name = $1, url = $2, started_on = $3, ended_on = $4, summary = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7`,
		p.Name, p.URL, p.StartedOn, p.EndedOn, p.Summary, p.ID, p.UserID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *PostgresSideProjectRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM side_projects WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrEntryNotFound
		}
		return err
	}
	if owner != userID {
		return ErrEntryForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM side_projects WHERE id = $1`, id)
	return err
}

func (r *PostgresSideProjectRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	return updatePositions(ctx, r.db, "side_projects", userID, orderedIDs)
}
