package seeder

import (
	"context"

	"beacon-port/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
