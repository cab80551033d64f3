package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"beacon-port/internal/domain/resume"
	"beacon-port/internal/domain/user"
	"beacon-port/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[uuid.UUID]user.User{},
		byEmail: map[string]user.User{},
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeProfileRepo struct {
	profiles   map[uuid.UUID]resume.Profile
	slugs      map[string]struct{}
	collisions int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: map[uuid.UUID]resume.Profile{},
		slugs:    map[string]struct{}{},
	}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (resume.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return resume.Profile{}, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) GetBySlug(context.Context, string) (resume.Profile, error) {
	return resume.Profile{}, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) Create(_ context.Context, p resume.Profile) error {
	if f.collisions > 0 {
		f.collisions--
		return &pgconn.PgError{Code: "23505"}
	}
	if _, ok := f.slugs[p.Slug]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	f.profiles[p.UserID] = p
	f.slugs[p.Slug] = struct{}{}
	return nil
}

func (f *fakeProfileRepo) Update(context.Context, resume.Profile) error { return nil }

func (f *fakeProfileRepo) SetVisibility(context.Context, uuid.UUID, bool) error { return nil }

func (f *fakeProfileRepo) SetPhotoKey(context.Context, uuid.UUID, string) error { return nil }

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	svc := NewService(users, profiles)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Dana@Example.COM ",
		Password: "correct horse",
		FullName: " Dana Kim ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if u.Email != "dana@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("returned user must not carry the password hash")
	}

	p, err := profiles.GetByUserID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if p.FullName != "Dana Kim" {
		t.Fatalf("expected full name on profile, got %q", p.FullName)
	}
	if strings.TrimSpace(p.Slug) == "" {
		t.Fatalf("profile created without a share slug")
	}
	if p.Public {
		t.Fatalf("new profiles must start private")
	}

	stored := users.byID[u.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewService(users, newFakeProfileRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "longenough"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "A@B.com", Password: "longenough"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_WeakInput(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeProfileRepo())

	cases := []RegisterInput{
		{Email: "", Password: "longenough"},
		{Email: "a@b.com", Password: "short"},
		{Email: "a@b.com", Password: "        "},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestRegister_SlugCollisionRetries(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	profiles.collisions = 2
	svc := NewService(users, profiles)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("two collisions should be absorbed by retries, got %v", err)
	}
	if _, err := profiles.GetByUserID(context.Background(), u.ID); err != nil {
		t.Fatalf("profile missing after retries: %v", err)
	}
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewService(users, newFakeProfileRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "longenough"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "A@B.COM", Password: "longenough"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "a@b.com" {
		t.Fatalf("unexpected email %q", u.Email)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@b.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
