package repository

import (
	"context"

	"beacon-port/internal/database"
	"beacon-port/internal/domain/resume"

	"github.com/google/uuid"
)

// SkillLinkRepository manages the junction rows attaching canonical skills to
// experiences and side projects. Link inserts are plain inserts; a duplicate
// pair surfaces as a unique-constraint error that callers absorb as success.
type SkillLinkRepository interface {
	LinkExperienceSkill(ctx context.Context, experienceID, skillID uuid.UUID) error
	DeleteExperienceSkills(ctx context.Context, experienceID uuid.UUID) error
	FindTagsByExperienceIDs(ctx context.Context, experienceIDs []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error)

	LinkSideProjectSkill(ctx context.Context, sideProjectID, skillID uuid.UUID) error
	DeleteSideProjectSkills(ctx context.Context, sideProjectID uuid.UUID) error
	FindTagsBySideProjectIDs(ctx context.Context, sideProjectIDs []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error)
}

type PostgresSkillLinkRepository struct {
	db database.DB
}

func NewPostgresSkillLinkRepository(db database.DB) *PostgresSkillLinkRepository {
	return &PostgresSkillLinkRepository{db: db}
}

func (r *PostgresSkillLinkRepository) LinkExperienceSkill(ctx context.Context, experienceID, skillID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO experience_skills (experience_id, skill_id) VALUES ($1, $2)`,
		experienceID, skillID,
	)
	return err
}

func (r *PostgresSkillLinkRepository) DeleteExperienceSkills(ctx context.Context, experienceID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM experience_skills WHERE experience_id = $1`,
		experienceID,
	)
	return err
}

func (r *PostgresSkillLinkRepository) FindTagsByExperienceIDs(ctx context.Context, experienceIDs []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error) {
	return r.findTags(ctx,
		`SELECT es.experience_id, s.id, s.name
		 FROM experience_skills es
		 JOIN skills s ON s.id = es.skill_id
		 WHERE es.experience_id = ANY($1)
		 ORDER BY s.name ASC`,
		experienceIDs,
	)
}

func (r *PostgresSkillLinkRepository) LinkSideProjectSkill(ctx context.Context, sideProjectID, skillID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO side_project_skills (side_project_id, skill_id) VALUES ($1, $2)`,
		sideProjectID, skillID,
	)
	return err
}

func (r *PostgresSkillLinkRepository) DeleteSideProjectSkills(ctx context.Context, sideProjectID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM side_project_skills WHERE side_project_id = $1`,
		sideProjectID,
	)
	return err
}

func (r *PostgresSkillLinkRepository) FindTagsBySideProjectIDs(ctx context.Context, sideProjectIDs []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error) {
	return r.findTags(ctx,
		`SELECT ps.side_project_id, s.id, s.name
		 FROM side_project_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.side_project_id = ANY($1)
		 ORDER BY s.name ASC`,
		sideProjectIDs,
	)
}

func (r *PostgresSkillLinkRepository) findTags(ctx context.Context, query string, parentIDs []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error) {
	out := make(map[uuid.UUID][]resume.SkillTag, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var parentID uuid.UUID
		var tag resume.SkillTag
		if err := rows.Scan(&parentID, &tag.SkillID, &tag.Name); err != nil {
			return nil, err
		}
		out[parentID] = append(out[parentID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
