package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"beacon-port/internal/domain/resume"
	"beacon-port/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeExperienceRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]resume.Experience
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{items: map[uuid.UUID]resume.Experience{}}
}

func (f *fakeExperienceRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]resume.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]resume.Experience, 0)
	for _, e := range f.items {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExperienceRepo) FindByID(_ context.Context, id uuid.UUID) (resume.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.items[id]; ok {
		return e, nil
	}
	return resume.Experience{}, repository.ErrEntryNotFound
}

func (f *fakeExperienceRepo) Create(_ context.Context, e resume.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[e.ID] = e
	return nil
}

func (f *fakeExperienceRepo) Update(_ context.Context, e resume.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[e.ID]; !ok {
		return repository.ErrEntryNotFound
	}
	f.items[e.ID] = e
	return nil
}

func (f *fakeExperienceRepo) Delete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.items[id]
	if !ok {
		return repository.ErrEntryNotFound
	}
	if e.UserID != userID {
		return repository.ErrEntryForbidden
	}
	delete(f.items, id)
	return nil
}

func (f *fakeExperienceRepo) UpdatePositions(_ context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pos, id := range orderedIDs {
		e, ok := f.items[id]
		if !ok || e.UserID != userID {
			return repository.ErrEntryNotFound
		}
		e.Position = pos
		f.items[id] = e
	}
	return nil
}

// fakeLinkRepo records link state per parent and can inject errors on insert.
type fakeLinkRepo struct {
	mu          sync.Mutex
	links       map[uuid.UUID]map[uuid.UUID]struct{}
	names       map[uuid.UUID]string
	deleteCalls int
	linkCalls   int
	linkErr     error
	linkErrOnce bool
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{
		links: map[uuid.UUID]map[uuid.UUID]struct{}{},
		names: map[uuid.UUID]string{},
	}
}

func (f *fakeLinkRepo) link(parentID, skillID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	if f.linkErr != nil {
		err := f.linkErr
		if f.linkErrOnce {
			f.linkErr = nil
		}
		return err
	}
	if _, ok := f.links[parentID]; !ok {
		f.links[parentID] = map[uuid.UUID]struct{}{}
	}
	if _, dup := f.links[parentID][skillID]; dup {
		return &pgconn.PgError{Code: "23505"}
	}
	f.links[parentID][skillID] = struct{}{}
	return nil
}

func (f *fakeLinkRepo) deleteAll(parentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	delete(f.links, parentID)
	return nil
}

func (f *fakeLinkRepo) tags(parentIDs []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID][]resume.SkillTag{}
	for _, pid := range parentIDs {
		for sid := range f.links[pid] {
			out[pid] = append(out[pid], resume.SkillTag{SkillID: sid, Name: f.names[sid]})
		}
	}
	return out, nil
}

func (f *fakeLinkRepo) LinkExperienceSkill(_ context.Context, experienceID, skillID uuid.UUID) error {
	return f.link(experienceID, skillID)
}

func (f *fakeLinkRepo) DeleteExperienceSkills(_ context.Context, experienceID uuid.UUID) error {
	return f.deleteAll(experienceID)
}

func (f *fakeLinkRepo) FindTagsByExperienceIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error) {
	return f.tags(ids)
}

func (f *fakeLinkRepo) LinkSideProjectSkill(_ context.Context, sideProjectID, skillID uuid.UUID) error {
	return f.link(sideProjectID, skillID)
}

func (f *fakeLinkRepo) DeleteSideProjectSkills(_ context.Context, sideProjectID uuid.UUID) error {
	return f.deleteAll(sideProjectID)
}

func (f *fakeLinkRepo) FindTagsBySideProjectIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]resume.SkillTag, error) {
	return f.tags(ids)
}

func (f *fakeLinkRepo) linkedSkills(parentID uuid.UUID) []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uuid.UUID, 0)
	for sid := range f.links[parentID] {
		out = append(out, sid)
	}
	return out
}

func newExperienceFixture() (*Experience, *fakeExperienceRepo, *fakeLinkRepo, *fakeSkillRepo) {
	expRepo := newFakeExperienceRepo()
	linkRepo := newFakeLinkRepo()
	skillRepo := newFakeSkillRepo()
	resolver := NewSkillResolver(skillRepo, nil)
	uc := NewExperienceUsecase(expRepo, linkRepo, resolver, nil)
	return uc, expRepo, linkRepo, skillRepo
}

func TestCreateExperience_InvalidInput(t *testing.T) {
	uc, _, _, _ := newExperienceFixture()
	userID := uuid.New()

	cases := []ExperienceInput{
		{Company: "", Title: "Engineer"},
		{Company: "Acme", Title: "  "},
	}
	for i, in := range cases {
		if _, err := uc.CreateExperience(context.Background(), userID, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestCreateExperience_LinksResolvedSkillsDeduped(t *testing.T) {
	uc, _, linkRepo, skillRepo := newExperienceFixture()
	goSkill := skillRepo.addSkill("Go")
	skillRepo.addAlias("golang", goSkill.ID)
	userID := uuid.New()

	created, err := uc.CreateExperience(context.Background(), userID, ExperienceInput{
		Company:   "Acme",
		Title:     "Backend Engineer",
		SkillsRaw: "Go, golang, PostgreSQL",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Go and golang resolve to the same id; PostgreSQL is lazily created.
	linked := linkRepo.linkedSkills(created.ID)
	if len(linked) != 2 {
		t.Fatalf("expected 2 links, got %d", len(linked))
	}
	if len(created.Skills) != 2 {
		t.Fatalf("expected 2 tags on response, got %d", len(created.Skills))
	}
}

func TestCreateExperience_SaveSurvivesResolverFailure(t *testing.T) {
	uc, expRepo, linkRepo, skillRepo := newExperienceFixture()
	skillRepo.errOnName["broken"] = errors.New("db down")
	userID := uuid.New()

	created, err := uc.CreateExperience(context.Background(), userID, ExperienceInput{
		Company:   "Acme",
		Title:     "Engineer",
		SkillsRaw: "broken",
	})
	if err != nil {
		t.Fatalf("save must not fail on tagging errors, got %v", err)
	}

	if _, err := expRepo.FindByID(context.Background(), created.ID); err != nil {
		t.Fatalf("entry not persisted: %v", err)
	}
	if got := linkRepo.linkedSkills(created.ID); len(got) != 0 {
		t.Fatalf("expected no links, got %d", len(got))
	}
}

func TestCreateExperience_BlankSkillsFieldNeverResolves(t *testing.T) {
	uc, _, linkRepo, skillRepo := newExperienceFixture()
	userID := uuid.New()

	if _, err := uc.CreateExperience(context.Background(), userID, ExperienceInput{
		Company:   "Acme",
		Title:     "Engineer",
		SkillsRaw: " ,  ,,",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if skillRepo.createCalls != 0 {
		t.Fatalf("blank tokens must not reach the dictionary, got %d creates", skillRepo.createCalls)
	}
	if linkRepo.linkCalls != 0 {
		t.Fatalf("blank tokens must not produce links, got %d", linkRepo.linkCalls)
	}
	// The wipe still runs: saving with an empty field clears old tags.
	if linkRepo.deleteCalls != 1 {
		t.Fatalf("expected 1 delete pass, got %d", linkRepo.deleteCalls)
	}
}

func TestUpdateExperience_ReplacesAllLinks(t *testing.T) {
	uc, _, linkRepo, skillRepo := newExperienceFixture()
	oldSkill := skillRepo.addSkill("Java")
	newSkill := skillRepo.addSkill("Go")
	userID := uuid.New()

	created, err := uc.CreateExperience(context.Background(), userID, ExperienceInput{
		Company:   "Acme",
		Title:     "Engineer",
		SkillsRaw: "Java",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	updated, err := uc.UpdateExperience(context.Background(), userID, created.ID, ExperienceInput{
		Company:   "Acme",
		Title:     "Engineer",
		SkillsRaw: "Go",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	linked := linkRepo.linkedSkills(updated.ID)
	if len(linked) != 1 {
		t.Fatalf("expected 1 link after replace, got %d", len(linked))
	}
	if linked[0] != newSkill.ID {
		t.Fatalf("expected %s linked, got %s (old %s)", newSkill.ID, linked[0], oldSkill.ID)
	}
}

func TestUpdateExperience_OwnershipEnforced(t *testing.T) {
	uc, _, _, _ := newExperienceFixture()
	owner := uuid.New()
	stranger := uuid.New()

	created, err := uc.CreateExperience(context.Background(), owner, ExperienceInput{
		Company: "Acme", Title: "Engineer",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := uc.UpdateExperience(context.Background(), stranger, created.ID, ExperienceInput{
		Company: "Evil", Title: "Engineer",
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := uc.DeleteExperience(context.Background(), stranger, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}

func TestLinker_DuplicateLinkInsertCountsAsSuccess(t *testing.T) {
	uc, _, linkRepo, skillRepo := newExperienceFixture()
	skillRepo.addSkill("Go")
	linkRepo.linkErr = &pgconn.PgError{Code: "23505"}
	linkRepo.linkErrOnce = true
	userID := uuid.New()

	created, err := uc.CreateExperience(context.Background(), userID, ExperienceInput{
		Company:   "Acme",
		Title:     "Engineer",
		SkillsRaw: "Go",
	})
	if err != nil {
		t.Fatalf("duplicate link insert must not fail the save, got %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("entry missing id")
	}
}

func TestLinker_VanishedSkillSkippedQuietly(t *testing.T) {
	uc, expRepo, _, skillRepo := newExperienceFixture()
	skillRepo.addSkill("Go")
	userID := uuid.New()

	linkRepo := newFakeLinkRepo()
	linkRepo.linkErr = &pgconn.PgError{Code: "23503"}
	resolver := NewSkillResolver(skillRepo, nil)
	uc = NewExperienceUsecase(expRepo, linkRepo, resolver, nil)

	created, err := uc.CreateExperience(context.Background(), userID, ExperienceInput{
		Company:   "Acme",
		Title:     "Engineer",
		SkillsRaw: "Go",
	})
	if err != nil {
		t.Fatalf("fk violation on link must not fail the save, got %v", err)
	}
	if got := linkRepo.linkedSkills(created.ID); len(got) != 0 {
		t.Fatalf("expected no links, got %d", len(got))
	}
}

func TestDeleteExperience_NotFound(t *testing.T) {
	uc, _, _, _ := newExperienceFixture()
	if err := uc.DeleteExperience(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderExperiences(t *testing.T) {
	uc, expRepo, _, _ := newExperienceFixture()
	userID := uuid.New()

	if err := uc.ReorderExperiences(context.Background(), userID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on empty order, got %v", err)
	}

	a, _ := uc.CreateExperience(context.Background(), userID, ExperienceInput{Company: "A", Title: "T"})
	b, _ := uc.CreateExperience(context.Background(), userID, ExperienceInput{Company: "B", Title: "T"})

	if err := uc.ReorderExperiences(context.Background(), userID, []uuid.UUID{b.ID, a.ID}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, _ := expRepo.FindByID(context.Background(), b.ID)
	if got.Position != 0 {
		t.Fatalf("expected %s at position 0, got %d", b.ID, got.Position)
	}
	got, _ = expRepo.FindByID(context.Background(), a.ID)
	if got.Position != 1 {
		t.Fatalf("expected %s at position 1, got %d", a.ID, got.Position)
	}
}
