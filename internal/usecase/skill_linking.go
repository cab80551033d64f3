package usecase

import (
	"context"
	"log"

	"beacon-port/internal/repository"

	"github.com/google/uuid"
)

// skillLinker runs the save-time tagging flow for a section entry: wipe the
// entry's links, resolve every token, link the successes. Linking is
// best-effort by contract — the entry itself is already saved, and no failure
// here may surface to the caller as a failed save.
type skillLinker struct {
	resolver SkillResolver
	links    repository.SkillLinkRepository
	logger   *log.Logger
}

func newSkillLinker(resolver SkillResolver, links repository.SkillLinkRepository, logger *log.Logger) skillLinker {
	if logger == nil {
		logger = log.Default()
	}
	return skillLinker{resolver: resolver, links: links, logger: logger}
}

func (l skillLinker) relinkExperience(ctx context.Context, experienceID uuid.UUID, rawField string) {
	l.relink(ctx, experienceID, rawField,
		l.links.DeleteExperienceSkills,
		l.links.LinkExperienceSkill,
	)
}

func (l skillLinker) relinkSideProject(ctx context.Context, sideProjectID uuid.UUID, rawField string) {
	l.relink(ctx, sideProjectID, rawField,
		l.links.DeleteSideProjectSkills,
		l.links.LinkSideProjectSkill,
	)
}

func (l skillLinker) relink(
	ctx context.Context,
	parentID uuid.UUID,
	rawField string,
	deleteAll func(context.Context, uuid.UUID) error,
	link func(context.Context, uuid.UUID, uuid.UUID) error,
) {
	if err := deleteAll(ctx, parentID); err != nil {
		l.logger.Printf("skill links delete failed | parent=%s err=%v", parentID, err)
		return
	}

	linked := make(map[uuid.UUID]struct{})
	for _, res := range l.resolver.ResolveAll(ctx, rawField) {
		if res.Err != nil {
			continue
		}
		// Two raw tokens can normalize to the same skill id.
		if _, ok := linked[res.SkillID]; ok {
			continue
		}
		linked[res.SkillID] = struct{}{}

		if err := link(ctx, parentID, res.SkillID); err != nil {
			switch {
			case isUniqueViolation(err):
				// Link already present; duplicate insert counts as success.
			case isForeignKeyViolation(err):
				l.logger.Printf("skill link skipped, skill vanished | parent=%s skill=%s", parentID, res.SkillID)
			default:
				l.logger.Printf("skill link failed | parent=%s skill=%s err=%v", parentID, res.SkillID, err)
			}
		}
	}
}
