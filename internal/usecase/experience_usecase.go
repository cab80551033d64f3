package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"beacon-port/internal/domain/resume"
	"beacon-port/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

type ExperienceInput struct {
	Company   string
	Title     string
	StartedOn *time.Time
	EndedOn   *time.Time
	Summary   string
	SkillsRaw string
}

type ExperienceUsecase interface {
	ListExperiences(ctx context.Context, userID uuid.UUID) ([]resume.Experience, error)
	CreateExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (resume.Experience, error)
	UpdateExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID, in ExperienceInput) (resume.Experience, error)
	DeleteExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ReorderExperiences(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type Experience struct {
	repo   repository.ExperienceRepository
	links  repository.SkillLinkRepository
	linker skillLinker
}

func NewExperienceUsecase(
	repo repository.ExperienceRepository,
	links repository.SkillLinkRepository,
	resolver SkillResolver,
	logger *log.Logger,
) *Experience {
	return &Experience{
		repo:   repo,
		links:  links,
		linker: newSkillLinker(resolver, links, logger),
	}
}

func (u *Experience) ListExperiences(ctx context.Context, userID uuid.UUID) ([]resume.Experience, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if err := u.attachTags(ctx, items); err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Experience) CreateExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (resume.Experience, error) {
	if err := validateExperienceInput(in); err != nil {
		return resume.Experience{}, err
	}

	existing, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return resume.Experience{}, ErrInternal
	}

	e := resume.Experience{
		ID:        uuid.New(),
		UserID:    userID,
		Company:   strings.TrimSpace(in.Company),
		Title:     strings.TrimSpace(in.Title),
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
		Summary:   in.Summary,
		Position:  len(existing),
	}
	if err := u.repo.Create(ctx, e); err != nil {
		return resume.Experience{}, ErrInternal
	}

	// The entry is saved; tagging from here on is best-effort.
	u.linker.relinkExperience(ctx, e.ID, in.SkillsRaw)

	return u.withTags(ctx, e)
}

func (u *Experience) UpdateExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID, in ExperienceInput) (resume.Experience, error) {
	if id == uuid.Nil {
		return resume.Experience{}, ErrInvalidInput
	}
	if err := validateExperienceInput(in); err != nil {
		return resume.Experience{}, err
	}

	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return resume.Experience{}, ErrNotFound
		}
		return resume.Experience{}, ErrInternal
	}
	if current.UserID != userID {
		return resume.Experience{}, ErrForbidden
	}

	e := resume.Experience{
		ID:        id,
		UserID:    userID,
		Company:   strings.TrimSpace(in.Company),
		Title:     strings.TrimSpace(in.Title),
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
		Summary:   in.Summary,
		Position:  current.Position,
	}
	if err := u.repo.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return resume.Experience{}, ErrNotFound
		}
		return resume.Experience{}, ErrInternal
	}

	u.linker.relinkExperience(ctx, e.ID, in.SkillsRaw)

	return u.withTags(ctx, e)
}

func (u *Experience) DeleteExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrEntryNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrEntryForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}
	return nil
}

func (u *Experience) ReorderExperiences(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return ErrInvalidInput
	}
	if err := u.repo.UpdatePositions(ctx, userID, orderedIDs); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Experience) attachTags(ctx context.Context, items []resume.Experience) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	tags, err := u.links.FindTagsByExperienceIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Skills = tags[items[i].ID]
	}
	return nil
}

func (u *Experience) withTags(ctx context.Context, e resume.Experience) (resume.Experience, error) {
	tags, err := u.links.FindTagsByExperienceIDs(ctx, []uuid.UUID{e.ID})
	if err != nil {
		// The save already succeeded; return the entry without tags rather
		// than failing it.
		return e, nil
	}
	e.Skills = tags[e.ID]
	return e, nil
}

func validateExperienceInput(in ExperienceInput) error {
	if strings.TrimSpace(in.Company) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return ErrInvalidInput
	}
	return nil
}
