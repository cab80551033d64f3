package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"beacon-port/internal/domain/skill"
	"beacon-port/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeSkillRepo is an in-memory dictionary with the same case-insensitive
// uniqueness the real schema enforces.
type fakeSkillRepo struct {
	mu      sync.Mutex
	aliases map[string]uuid.UUID
	skills  map[string]skill.Skill

	createCalls int
	errOnName   map[string]error
	dropInserts bool
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{
		aliases:   map[string]uuid.UUID{},
		skills:    map[string]skill.Skill{},
		errOnName: map[string]error{},
	}
}

func (f *fakeSkillRepo) addSkill(name string) skill.Skill {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := skill.Skill{ID: uuid.New(), Name: name, Verified: true}
	f.skills[strings.ToLower(name)] = s
	return s
}

func (f *fakeSkillRepo) addAlias(alias string, skillID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aliases[strings.ToLower(alias)] = skillID
}

func (f *fakeSkillRepo) FindSkillIDByAlias(_ context.Context, alias string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.aliases[strings.ToLower(alias)]; ok {
		return id, nil
	}
	return uuid.Nil, repository.ErrSkillNotFound
}

func (f *fakeSkillRepo) FindSkillByName(_ context.Context, name string) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errOnName[strings.ToLower(name)]; ok {
		return skill.Skill{}, err
	}
	if s, ok := f.skills[strings.ToLower(name)]; ok {
		return s, nil
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (f *fakeSkillRepo) CreateSkill(_ context.Context, name string) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	key := strings.ToLower(name)
	if _, ok := f.skills[key]; ok {
		return skill.Skill{}, &pgconn.PgError{Code: "23505"}
	}
	if f.dropInserts {
		return skill.Skill{}, &pgconn.PgError{Code: "23505"}
	}
	s := skill.Skill{ID: uuid.New(), Name: name}
	f.skills[key] = s
	return s, nil
}

func (f *fakeSkillRepo) GetAllSkills(context.Context) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]skill.Skill, 0, len(f.skills))
	for _, s := range f.skills {
		out = append(out, s)
	}
	return out, nil
}

func TestResolve_AliasTakesPrecedenceOverName(t *testing.T) {
	repo := newFakeSkillRepo()
	canonical := repo.addSkill("Go")
	decoy := repo.addSkill("golang")
	repo.addAlias("golang", canonical.ID)

	r := NewSkillResolver(repo, nil)
	id, err := r.Resolve(context.Background(), "Golang")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != canonical.ID {
		t.Fatalf("expected alias target %s, got %s (decoy %s)", canonical.ID, id, decoy.ID)
	}
}

func TestResolve_CaseInsensitiveMatchSkipsCreate(t *testing.T) {
	repo := newFakeSkillRepo()
	existing := repo.addSkill("PostgreSQL")

	r := NewSkillResolver(repo, nil)
	for _, tok := range []string{"postgresql", "POSTGRESQL", "PostgreSQL", "  postgreSQL  "} {
		id, err := r.Resolve(context.Background(), tok)
		if err != nil {
			t.Fatalf("token %q: unexpected err: %v", tok, err)
		}
		if id != existing.ID {
			t.Fatalf("token %q: expected %s, got %s", tok, existing.ID, id)
		}
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no creates, got %d", repo.createCalls)
	}
}

func TestResolve_CreatesUnknownTokenOnce(t *testing.T) {
	repo := newFakeSkillRepo()
	r := NewSkillResolver(repo, nil)

	first, err := r.Resolve(context.Background(), "Zig")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := r.Resolve(context.Background(), "zig")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first != second {
		t.Fatalf("repeated resolve diverged: %s vs %s", first, second)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected exactly 1 create, got %d", repo.createCalls)
	}

	s, err := repo.FindSkillByName(context.Background(), "zig")
	if err != nil {
		t.Fatalf("created skill missing: %v", err)
	}
	if s.Name != "zig" {
		t.Fatalf("expected stored name folded to %q, got %q", "zig", s.Name)
	}
	if s.Verified {
		t.Fatalf("lazily created skill must be unverified")
	}
}

func TestResolve_InvalidInput(t *testing.T) {
	r := NewSkillResolver(newFakeSkillRepo(), nil)
	for _, tok := range []string{"", "   ", "\t\n"} {
		if _, err := r.Resolve(context.Background(), tok); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("token %q: expected ErrInvalidInput, got %v", tok, err)
		}
	}
}

// raceSkillRepo simulates losing the insert race: the name lookup misses,
// the insert hits the unique index, and the winner's row is visible on the
// re-read.
type raceSkillRepo struct {
	*fakeSkillRepo
	winner skill.Skill
}

func (r *raceSkillRepo) CreateSkill(_ context.Context, name string) (skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	r.skills[strings.ToLower(name)] = r.winner
	return skill.Skill{}, &pgconn.PgError{Code: "23505"}
}

func TestResolve_RecoversFromLostInsertRace(t *testing.T) {
	repo := &raceSkillRepo{
		fakeSkillRepo: newFakeSkillRepo(),
		winner:        skill.Skill{ID: uuid.New(), Name: "elixir"},
	}

	r := NewSkillResolver(repo, nil)
	id, err := r.Resolve(context.Background(), "Elixir")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != repo.winner.ID {
		t.Fatalf("expected winner id %s, got %s", repo.winner.ID, id)
	}
}

func TestResolve_ResolutionFailedWhenRecoveryMisses(t *testing.T) {
	repo := newFakeSkillRepo()
	repo.dropInserts = true

	r := NewSkillResolver(repo, nil)
	if _, err := r.Resolve(context.Background(), "Haskell"); !errors.Is(err, ErrResolutionFailed) {
		t.Fatalf("expected ErrResolutionFailed, got %v", err)
	}
}

func TestResolve_ConcurrentSameTokenConverges(t *testing.T) {
	repo := newFakeSkillRepo()
	r := NewSkillResolver(repo, nil)

	const n = 32
	ids := make([]uuid.UUID, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = r.Resolve(context.Background(), "Terraform")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: unexpected err: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("goroutine %d resolved %s, expected %s", i, ids[i], ids[0])
		}
	}

	all, _ := repo.GetAllSkills(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected a single dictionary row, got %d", len(all))
	}
}

func TestResolveAll_PartialFailureKeepsGoing(t *testing.T) {
	repo := newFakeSkillRepo()
	repo.addSkill("Go")
	repo.errOnName["broken"] = errors.New("connection reset")

	r := NewSkillResolver(repo, nil)
	results := r.ResolveAll(context.Background(), "Go, broken, Rust")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("Go should resolve: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatalf("broken should fail")
	}
	if results[2].Err != nil {
		t.Fatalf("Rust should resolve despite earlier failure: %v", results[2].Err)
	}
	if results[2].SkillID == uuid.Nil {
		t.Fatalf("Rust resolution returned nil id")
	}
}

func TestParseSkillsField(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: []string{}},
		{raw: " , ,,", want: []string{}},
		{raw: "Go", want: []string{"Go"}},
		{raw: " Go , PostgreSQL ,Redis", want: []string{"Go", "PostgreSQL", "Redis"}},
		{raw: "Go,Go,Go", want: []string{"Go"}},
		// Dedup is on the raw token; the resolver folds case later.
		{raw: "Go, go", want: []string{"Go", "go"}},
	}

	for _, tc := range cases {
		got := ParseSkillsField(tc.raw)
		if len(got) != len(tc.want) {
			t.Fatalf("raw %q: expected %v, got %v", tc.raw, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("raw %q: expected %v, got %v", tc.raw, tc.want, got)
			}
		}
	}
}

func TestNormalizeSkillToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "Go", want: "go"},
		{in: "  PostgreSQL  ", want: "postgresql"},
		{in: "already lower", want: "already lower"},
		{in: "C++", want: "c++"},
		// Only ASCII letters fold; non-ASCII passes through untouched.
		{in: "Café", want: "café"},
		{in: "ÉLAN", want: "Élan"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeSkillToken(tc.in); got != tc.want {
			t.Fatalf("NormalizeSkillToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
