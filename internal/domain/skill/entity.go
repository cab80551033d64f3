package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is a canonical entry in the shared, process-wide skill dictionary.
// Name is unique case-insensitively; Verified marks curated entries.
type Skill struct {
	ID        uuid.UUID
	Name      string
	Verified  bool
	CreatedAt time.Time
}

// Alias maps an alternate spelling ("k8s") onto a canonical skill.
// Aliases are curated data: the résumé-save flow reads them, never writes.
type Alias struct {
	ID      uuid.UUID
	SkillID uuid.UUID
	Alias   string
}
