package seeder

import (
	"context"
	"fmt"

	"beacon-port/internal/database"
)

// SkillsSeeder loads the verified base dictionary. User-created skills enter
// unverified through the resolver; these are the curated canonical names.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "verified", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	names := []string{
		"Go",
		"JavaScript",
		"TypeScript",
		"Python",
		"Java",
		"Kotlin",
		"Swift",
		"Rust",
		"C++",
		"PostgreSQL",
		"MySQL",
		"MongoDB",
		"Redis",
		"Docker",
		"Kubernetes",
		"Terraform",
		"AWS",
		"GCP",
		"Azure",
		"React",
		"Vue.js",
		"Next.js",
		"Node.js",
		"Spring Boot",
		"Django",
		"GraphQL",
		"gRPC",
		"Kafka",
		"Elasticsearch",
		"Git",
	}

	for _, name := range names {
		affected, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, verified) VALUES (gen_random_uuid(), $1, true) ON CONFLICT (LOWER(name)) DO NOTHING`,
			name,
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
