package seeder

import (
	"context"
	"fmt"

	"beacon-port/internal/database"
)

// SkillAliasesSeeder maps common spellings onto their canonical skills.
// Alias inserts silently skip when the target skill is missing.
type SkillAliasesSeeder struct{}

func (SkillAliasesSeeder) Name() string { return "skill_aliases" }

func (SkillAliasesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_aliases", "id", "skill_id", "alias"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	pairs := []struct {
		Alias string
		Skill string
	}{
		{Alias: "golang", Skill: "Go"},
		{Alias: "js", Skill: "JavaScript"},
		{Alias: "ts", Skill: "TypeScript"},
		{Alias: "postgres", Skill: "PostgreSQL"},
		{Alias: "postgresql db", Skill: "PostgreSQL"},
		{Alias: "k8s", Skill: "Kubernetes"},
		{Alias: "reactjs", Skill: "React"},
		{Alias: "react.js", Skill: "React"},
		{Alias: "vuejs", Skill: "Vue.js"},
		{Alias: "vue", Skill: "Vue.js"},
		{Alias: "nextjs", Skill: "Next.js"},
		{Alias: "nodejs", Skill: "Node.js"},
		{Alias: "node", Skill: "Node.js"},
		{Alias: "springboot", Skill: "Spring Boot"},
		{Alias: "spring", Skill: "Spring Boot"},
		{Alias: "mongo", Skill: "MongoDB"},
		{Alias: "es", Skill: "Elasticsearch"},
		{Alias: "amazon web services", Skill: "AWS"},
		{Alias: "google cloud", Skill: "GCP"},
		{Alias: "cpp", Skill: "C++"},
	}

	for _, p := range pairs {
		affected, err := tx.Exec(
			ctx,
			`INSERT INTO skill_aliases (id, skill_id, alias)
			 SELECT gen_random_uuid(), s.id, $1 FROM skills s WHERE LOWER(s.name) = LOWER($2)
			 ON CONFLICT (LOWER(alias)) DO NOTHING`,
			p.Alias,
			p.Skill,
		)
		if err != nil {
			return err
		}
		_ = affected
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
