package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"beacon-port/internal/domain/resume"
	"beacon-port/internal/repository"

	"github.com/google/uuid"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	byUser   map[uuid.UUID]resume.Profile
	bySlug   map[string]resume.Profile
	getCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byUser: map[uuid.UUID]resume.Profile{},
		bySlug: map[string]resume.Profile{},
	}
}

func (f *fakeProfileRepo) put(p resume.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[p.UserID] = p
	f.bySlug[p.Slug] = p
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (resume.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return resume.Profile{}, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) GetBySlug(_ context.Context, slug string) (resume.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if p, ok := f.bySlug[slug]; ok {
		return p, nil
	}
	return resume.Profile{}, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) Create(_ context.Context, p resume.Profile) error {
	f.put(p)
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p resume.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byUser[p.UserID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.ID = cur.ID
	p.Slug = cur.Slug
	p.Public = cur.Public
	p.PhotoKey = cur.PhotoKey
	f.byUser[p.UserID] = p
	f.bySlug[p.Slug] = p
	return nil
}

func (f *fakeProfileRepo) SetVisibility(_ context.Context, userID uuid.UUID, public bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.Public = public
	f.byUser[userID] = p
	f.bySlug[p.Slug] = p
	return nil
}

func (f *fakeProfileRepo) SetPhotoKey(_ context.Context, userID uuid.UUID, photoKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.PhotoKey = photoKey
	f.byUser[userID] = p
	f.bySlug[p.Slug] = p
	return nil
}

type stubEducationRepo struct{}

func (stubEducationRepo) FindByUserID(context.Context, uuid.UUID) ([]resume.Education, error) {
	return nil, nil
}
func (stubEducationRepo) Create(context.Context, resume.Education) error { return nil }
func (stubEducationRepo) Update(context.Context, resume.Education) error { return nil }
func (stubEducationRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (stubEducationRepo) UpdatePositions(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}

type stubCertificationRepo struct{}

func (stubCertificationRepo) FindByUserID(context.Context, uuid.UUID) ([]resume.Certification, error) {
	return nil, nil
}
func (stubCertificationRepo) Create(context.Context, resume.Certification) error { return nil }
func (stubCertificationRepo) Update(context.Context, resume.Certification) error { return nil }
func (stubCertificationRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (stubCertificationRepo) UpdatePositions(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}

type stubLanguageScoreRepo struct{}

func (stubLanguageScoreRepo) FindByUserID(context.Context, uuid.UUID) ([]resume.LanguageScore, error) {
	return nil, nil
}
func (stubLanguageScoreRepo) Create(context.Context, resume.LanguageScore) error { return nil }
func (stubLanguageScoreRepo) Update(context.Context, resume.LanguageScore) error { return nil }
func (stubLanguageScoreRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (stubLanguageScoreRepo) UpdatePositions(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}

type stubActivityRepo struct{}

func (stubActivityRepo) FindByUserID(context.Context, uuid.UUID) ([]resume.Activity, error) {
	return nil, nil
}
func (stubActivityRepo) Create(context.Context, resume.Activity) error { return nil }
func (stubActivityRepo) Update(context.Context, resume.Activity) error { return nil }
func (stubActivityRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (stubActivityRepo) UpdatePositions(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}

type stubSideProjectRepo struct{}

func (stubSideProjectRepo) FindByUserID(context.Context, uuid.UUID) ([]resume.SideProject, error) {
	return nil, nil
}
func (stubSideProjectRepo) FindByID(context.Context, uuid.UUID) (resume.SideProject, error) {
	return resume.SideProject{}, repository.ErrEntryNotFound
}
func (stubSideProjectRepo) Create(context.Context, resume.SideProject) error { return nil }
func (stubSideProjectRepo) Update(context.Context, resume.SideProject) error { return nil }
func (stubSideProjectRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (stubSideProjectRepo) UpdatePositions(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}

// memCache is a map-backed ResumeCache.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	hits    int
	deletes int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.deletes++
	return nil
}

func newResumeFixture(profiles *fakeProfileRepo, cache ResumeCache) *Resume {
	return NewResumeUsecase(ResumeDeps{
		Profiles:       profiles,
		Experiences:    newFakeExperienceRepo(),
		SideProjects:   stubSideProjectRepo{},
		Educations:     stubEducationRepo{},
		Certifications: stubCertificationRepo{},
		LanguageScores: stubLanguageScoreRepo{},
		Activities:     stubActivityRepo{},
		Links:          newFakeLinkRepo(),
		Cache:          cache,
		CacheTTL:       time.Minute,
	})
}

func TestGetPublicResume_UnknownAndPrivateLookAlike(t *testing.T) {
	profiles := newFakeProfileRepo()
	profiles.put(resume.Profile{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Slug:   "hidden",
		Public: false,
	})

	uc := newResumeFixture(profiles, nil)

	_, _, missingErr := uc.GetPublicResume(context.Background(), "nope")
	_, _, privateErr := uc.GetPublicResume(context.Background(), "hidden")

	if !errors.Is(missingErr, ErrNotFound) {
		t.Fatalf("unknown slug: expected ErrNotFound, got %v", missingErr)
	}
	if !errors.Is(privateErr, ErrNotFound) {
		t.Fatalf("private slug: expected ErrNotFound, got %v", privateErr)
	}
}

func TestGetPublicResume_PopulatesAndUsesCache(t *testing.T) {
	profiles := newFakeProfileRepo()
	profiles.put(resume.Profile{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		FullName: "Dana Kim",
		Slug:     "dana",
		Public:   true,
	})

	cache := newMemCache()
	uc := newResumeFixture(profiles, cache)

	first, _, err := uc.GetPublicResume(context.Background(), "dana")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.sets)
	}

	second, _, err := uc.GetPublicResume(context.Background(), "dana")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected cache hit on second read, got %d", cache.hits)
	}
	if profiles.getCalls != 1 {
		t.Fatalf("expected 1 db read, got %d", profiles.getCalls)
	}
	if first.Profile.FullName != second.Profile.FullName {
		t.Fatalf("cached view diverged: %q vs %q", first.Profile.FullName, second.Profile.FullName)
	}
}

func TestSetVisibility_InvalidatesCache(t *testing.T) {
	userID := uuid.New()
	profiles := newFakeProfileRepo()
	profiles.put(resume.Profile{
		ID:     uuid.New(),
		UserID: userID,
		Slug:   "dana",
		Public: true,
	})

	cache := newMemCache()
	uc := newResumeFixture(profiles, cache)

	if _, _, err := uc.GetPublicResume(context.Background(), "dana"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	slug, err := uc.SetVisibility(context.Background(), userID, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if slug != "dana" {
		t.Fatalf("expected slug dana, got %q", slug)
	}
	if cache.deletes != 1 {
		t.Fatalf("visibility flip must drop the cached view, got %d deletes", cache.deletes)
	}

	// Now hidden: cache is cold and the db copy is private.
	if _, _, err := uc.GetPublicResume(context.Background(), "dana"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after hiding, got %v", err)
	}
}

func TestSetVisibility_NoProfile(t *testing.T) {
	uc := newResumeFixture(newFakeProfileRepo(), nil)
	if _, err := uc.SetVisibility(context.Background(), uuid.New(), true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
