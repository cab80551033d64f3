package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"beacon-port/internal/domain/resume"
	"beacon-port/internal/repository"
	"beacon-port/internal/ws"

	"github.com/google/uuid"
)

// ResumeCache is the read-cache surface for assembled public résumés.
// A nil implementation is a valid "cache disabled" state.
type ResumeCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type ResumeUsecase interface {
	GetPublicResume(ctx context.Context, slug string) (resume.Public, string, error)
	SetVisibility(ctx context.Context, userID uuid.UUID, public bool) (string, error)
	InvalidatePublic(ctx context.Context, userID uuid.UUID)
}

type Resume struct {
	profiles       repository.ProfileRepository
	experiences    repository.ExperienceRepository
	sideProjects   repository.SideProjectRepository
	educations     repository.EducationRepository
	certifications repository.CertificationRepository
	languageScores repository.LanguageScoreRepository
	activities     repository.ActivityRepository
	links          repository.SkillLinkRepository

	cache    ResumeCache
	cacheTTL time.Duration
	storage  PhotoStorage
	logger   *log.Logger
}

type ResumeDeps struct {
	Profiles       repository.ProfileRepository
	Experiences    repository.ExperienceRepository
	SideProjects   repository.SideProjectRepository
	Educations     repository.EducationRepository
	Certifications repository.CertificationRepository
	LanguageScores repository.LanguageScoreRepository
	Activities     repository.ActivityRepository
	Links          repository.SkillLinkRepository

	Cache    ResumeCache
	CacheTTL time.Duration
	Storage  PhotoStorage
	Logger   *log.Logger
}

func NewResumeUsecase(d ResumeDeps) *Resume {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	return &Resume{
		profiles:       d.Profiles,
		experiences:    d.Experiences,
		sideProjects:   d.SideProjects,
		educations:     d.Educations,
		certifications: d.Certifications,
		languageScores: d.LanguageScores,
		activities:     d.Activities,
		links:          d.Links,
		cache:          d.Cache,
		cacheTTL:       d.CacheTTL,
		storage:        d.Storage,
		logger:         d.Logger,
	}
}

func cacheKeyForSlug(slug string) string {
	return "resume:public:" + slug
}

func (u *Resume) GetPublicResume(ctx context.Context, slug string) (resume.Public, string, error) {
	if slug == "" {
		return resume.Public{}, "", ErrNotFound
	}

	var out resume.Public
	if u.cache != nil {
		if hit, err := u.cache.GetJSON(ctx, cacheKeyForSlug(slug), &out); err == nil && hit {
			// Cached copies are only written for public profiles, but the
			// owner may have flipped visibility since; the flip deletes the
			// key, so a hit is trustworthy.
			return out, u.photoURL(ctx, out.Profile.PhotoKey), nil
		}
	}

	p, err := u.profiles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return resume.Public{}, "", ErrNotFound
		}
		return resume.Public{}, "", ErrInternal
	}
	if !p.Public {
		// Private résumés are indistinguishable from absent ones.
		return resume.Public{}, "", ErrNotFound
	}

	assembled, err := u.assemble(ctx, p)
	if err != nil {
		return resume.Public{}, "", ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKeyForSlug(slug), assembled, u.cacheTTL); err != nil {
			u.logger.Printf("resume cache set failed | slug=%s err=%v", slug, err)
		}
	}

	return assembled, u.photoURL(ctx, p.PhotoKey), nil
}

func (u *Resume) SetVisibility(ctx context.Context, userID uuid.UUID, public bool) (string, error) {
	if err := u.profiles.SetVisibility(ctx, userID, public); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return "", ErrNotFound
		}
		return "", ErrInternal
	}

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", ErrInternal
	}

	u.invalidateSlug(ctx, p.Slug)
	return p.Slug, nil
}

// InvalidatePublic drops the cached public view and pings preview listeners.
// Called after any section save; best-effort.
func (u *Resume) InvalidatePublic(ctx context.Context, userID uuid.UUID) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return
	}
	u.invalidateSlug(ctx, p.Slug)
}

func (u *Resume) invalidateSlug(ctx context.Context, slug string) {
	if u.cache != nil {
		if err := u.cache.Delete(ctx, cacheKeyForSlug(slug)); err != nil {
			u.logger.Printf("resume cache invalidate failed | slug=%s err=%v", slug, err)
		}
	}
	ws.NotifyResumeUpdated(slug)
}

func (u *Resume) assemble(ctx context.Context, p resume.Profile) (resume.Public, error) {
	exps, err := u.experiences.FindByUserID(ctx, p.UserID)
	if err != nil {
		return resume.Public{}, err
	}
	if len(exps) > 0 {
		ids := make([]uuid.UUID, 0, len(exps))
		for _, e := range exps {
			ids = append(ids, e.ID)
		}
		tags, err := u.links.FindTagsByExperienceIDs(ctx, ids)
		if err != nil {
			return resume.Public{}, err
		}
		for i := range exps {
			exps[i].Skills = tags[exps[i].ID]
		}
	}

	projects, err := u.sideProjects.FindByUserID(ctx, p.UserID)
	if err != nil {
		return resume.Public{}, err
	}
	if len(projects) > 0 {
		ids := make([]uuid.UUID, 0, len(projects))
		for _, sp := range projects {
			ids = append(ids, sp.ID)
		}
		tags, err := u.links.FindTagsBySideProjectIDs(ctx, ids)
		if err != nil {
			return resume.Public{}, err
		}
		for i := range projects {
			projects[i].Skills = tags[projects[i].ID]
		}
	}

	edus, err := u.educations.FindByUserID(ctx, p.UserID)
	if err != nil {
		return resume.Public{}, err
	}
	certs, err := u.certifications.FindByUserID(ctx, p.UserID)
	if err != nil {
		return resume.Public{}, err
	}
	langs, err := u.languageScores.FindByUserID(ctx, p.UserID)
	if err != nil {
		return resume.Public{}, err
	}
	acts, err := u.activities.FindByUserID(ctx, p.UserID)
	if err != nil {
		return resume.Public{}, err
	}

	return resume.Public{
		Profile:        p,
		Experiences:    exps,
		SideProjects:   projects,
		Educations:     edus,
		Certifications: certs,
		LanguageScores: langs,
		Activities:     acts,
	}, nil
}

func (u *Resume) photoURL(ctx context.Context, photoKey string) string {
	if photoKey == "" || u.storage == nil {
		return ""
	}
	url, err := u.storage.PresignedGetURL(ctx, photoKey)
	if err != nil {
		return ""
	}
	return url
}
