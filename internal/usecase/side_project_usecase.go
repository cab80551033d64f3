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

type SideProjectInput struct {
	Name      string
	URL       string
	StartedOn *time.Time
	EndedOn   *time.Time
	Summary   string
	SkillsRaw string
}

type SideProjectUsecase interface {
	ListSideProjects(ctx context.Context, userID uuid.UUID) ([]resume.SideProject, error)
	CreateSideProject(ctx context.Context, userID uuid.UUID, in SideProjectInput) (resume.SideProject, error)
	UpdateSideProject(ctx context.Context, userID uuid.UUID, id uuid.UUID, in SideProjectInput) (resume.SideProject, error)
	DeleteSideProject(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ReorderSideProjects(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type SideProject struct {
	repo   repository.SideProjectRepository
	links  repository.SkillLinkRepository
	linker skillLinker
}

func NewSideProjectUsecase(
	repo repository.SideProjectRepository,
	links repository.SkillLinkRepository,
	resolver SkillResolver,
	logger *log.Logger,
) *SideProject {
	return &SideProject{
		repo:   repo,
		links:  links,
		linker: newSkillLinker(resolver, links, logger),
	}
}

func (u *SideProject) ListSideProjects(ctx context.Context, userID uuid.UUID) ([]resume.SideProject, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if err := u.attachTags(ctx, items); err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *SideProject) CreateSideProject(ctx context.Context, userID uuid.UUID, in SideProjectInput) (resume.SideProject, error) {
	if strings.TrimSpace(in.Name) == "" {
		return resume.SideProject{}, ErrInvalidInput
	}

	existing, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return resume.SideProject{}, ErrInternal
	}

	p := resume.SideProject{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		URL:       strings.TrimSpace(in.URL),
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
		Summary:   in.Summary,
		Position:  len(existing),
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return resume.SideProject{}, ErrInternal
	}

	u.linker.relinkSideProject(ctx, p.ID, in.SkillsRaw)

	return u.withTags(ctx, p)
}

func (u *SideProject) UpdateSideProject(ctx context.Context, userID uuid.UUID, id uuid.UUID, in SideProjectInput) (resume.SideProject, error) {
	if id == uuid.Nil {
		return resume.SideProject{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return resume.SideProject{}, ErrInvalidInput
	}

	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return resume.SideProject{}, ErrNotFound
		}
		return resume.SideProject{}, ErrInternal
	}
	if current.UserID != userID {
		return resume.SideProject{}, ErrForbidden
	}

	p := resume.SideProject{
		ID:        id,
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		URL:       strings.TrimSpace(in.URL),
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
		Summary:   in.Summary,
		Position:  current.Position,
	}
	if err := u.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return resume.SideProject{}, ErrNotFound
		}
		return resume.SideProject{}, ErrInternal
	}

	u.linker.relinkSideProject(ctx, p.ID, in.SkillsRaw)

	return u.withTags(ctx, p)
}

func (u *SideProject) DeleteSideProject(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
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

func (u *SideProject) ReorderSideProjects(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
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

func (u *SideProject) attachTags(ctx context.Context, items []resume.SideProject) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	tags, err := u.links.FindTagsBySideProjectIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Skills = tags[items[i].ID]
	}
	return nil
}

func (u *SideProject) withTags(ctx context.Context, p resume.SideProject) (resume.SideProject, error) {
	tags, err := u.links.FindTagsBySideProjectIDs(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return p, nil
	}
	p.Skills = tags[p.ID]
	return p, nil
}
