package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"beacon-port/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
	ErrResolutionFailed = errors.New("skill resolution failed")
)

// TokenResolution is the per-token outcome of a batch resolve. A failed token
// carries its error here instead of aborting the batch: partial success is the
// expected case when saving a résumé section, not an exceptional one.
type TokenResolution struct {
	Token   string
	SkillID uuid.UUID
	Err     error
}

type SkillResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	ResolveAll(ctx context.Context, rawField string) []TokenResolution
}

// Resolver maps free-text skill tokens onto the shared canonical dictionary.
//
// Resolution order: alias match, then canonical name match, then lazy create.
// The create is a plain insert with no locking; when two requests race on the
// same unseen token, the unique index on skills.name lets exactly one insert
// through and the loser re-reads the winner's row.
type Resolver struct {
	skills repository.SkillRepository
	logger *log.Logger
}

func NewSkillResolver(skills repository.SkillRepository, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{skills: skills, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	norm := NormalizeSkillToken(token)
	if norm == "" {
		return uuid.Nil, ErrInvalidInput
	}

	id, err := r.skills.FindSkillIDByAlias(ctx, norm)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrSkillNotFound) {
		return uuid.Nil, err
	}

	s, err := r.skills.FindSkillByName(ctx, norm)
	if err == nil {
		return s.ID, nil
	}
	if !errors.Is(err, repository.ErrSkillNotFound) {
		return uuid.Nil, err
	}

	created, err := r.skills.CreateSkill(ctx, norm)
	if err == nil {
		return created.ID, nil
	}
	if !isUniqueViolation(err) {
		return uuid.Nil, err
	}

	// Lost the insert race: a concurrent writer created the row between the
	// name lookup and our insert. Its row is the canonical one.
	s, err = r.skills.FindSkillByName(ctx, norm)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return uuid.Nil, ErrResolutionFailed
		}
		return uuid.Nil, err
	}
	return s.ID, nil
}

func (r *Resolver) ResolveAll(ctx context.Context, rawField string) []TokenResolution {
	tokens := ParseSkillsField(rawField)
	out := make([]TokenResolution, 0, len(tokens))
	for _, tok := range tokens {
		id, err := r.Resolve(ctx, tok)
		if err != nil {
			r.logger.Printf("skill resolve failed | token=%q err=%v", tok, err)
		}
		out = append(out, TokenResolution{Token: tok, SkillID: id, Err: err})
	}
	return out
}

// ParseSkillsField splits a user-submitted comma-separated skills field into
// tokens: trimmed, empties dropped, case-sensitive dedup on the raw string.
func ParseSkillsField(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		tok := strings.TrimSpace(p)
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// NormalizeSkillToken folds ASCII uppercase to lowercase, byte by byte.
// Non-ASCII runes pass through as typed; the stored dictionary was built with
// this exact fold, so widening it to Unicode case folding would change which
// existing names a token matches.
func NormalizeSkillToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	b := []byte(token)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return token
	}
	return string(b)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
