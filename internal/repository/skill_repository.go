package repository

import (
	"context"
	"database/sql"
	"errors"

	"beacon-port/internal/database"
	"beacon-port/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

// SkillRepository is the store contract behind skill resolution. Lookups are
// case-insensitive. CreateSkill performs a plain insert so a concurrent
// duplicate surfaces as a unique-constraint error for the caller to classify.
type SkillRepository interface {
	FindSkillIDByAlias(ctx context.Context, alias string) (uuid.UUID, error)
	FindSkillByName(ctx context.Context, name string) (skill.Skill, error)
	CreateSkill(ctx context.Context, name string) (skill.Skill, error)
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) FindSkillIDByAlias(ctx context.Context, alias string) (uuid.UUID, error) {
	row := r.db.QueryRow(ctx,
		`SELECT skill_id FROM skill_aliases WHERE LOWER(alias) = LOWER($1)`,
		alias,
	)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrSkillNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresSkillRepository) FindSkillByName(ctx context.Context, name string) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, verified, created_at FROM skills WHERE LOWER(name) = LOWER($1) LIMIT 1`,
		name,
	)

	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Verified, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string) (skill.Skill, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, verified) VALUES ($1, $2, false)`,
		id, name,
	)
	if err != nil {
		return skill.Skill{}, err
	}
	return skill.Skill{ID: id, Name: name, Verified: false}, nil
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, verified, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Verified, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
