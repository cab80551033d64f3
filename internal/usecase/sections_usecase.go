package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"beacon-port/internal/domain/resume"
	"beacon-port/internal/repository"

	"github.com/google/uuid"
)

// Usecases for the skill-free résumé sections. Same CRUD contract per
// section; only the fields differ.

type EducationInput struct {
	School    string
	Degree    string
	Major     string
	StartedOn *time.Time
	EndedOn   *time.Time
}

type CertificationInput struct {
	Name     string
	Issuer   string
	IssuedOn *time.Time
}

type LanguageScoreInput struct {
	TestName string
	Score    string
	TakenOn  *time.Time
}

type ActivityInput struct {
	Title     string
	Body      string
	StartedOn *time.Time
	EndedOn   *time.Time
}

type EducationUsecase interface {
	ListEducations(ctx context.Context, userID uuid.UUID) ([]resume.Education, error)
	CreateEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (resume.Education, error)
	UpdateEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID, in EducationInput) (resume.Education, error)
	DeleteEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ReorderEducations(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type CertificationUsecase interface {
	ListCertifications(ctx context.Context, userID uuid.UUID) ([]resume.Certification, error)
	CreateCertification(ctx context.Context, userID uuid.UUID, in CertificationInput) (resume.Certification, error)
	UpdateCertification(ctx context.Context, userID uuid.UUID, id uuid.UUID, in CertificationInput) (resume.Certification, error)
	DeleteCertification(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ReorderCertifications(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type LanguageScoreUsecase interface {
	ListLanguageScores(ctx context.Context, userID uuid.UUID) ([]resume.LanguageScore, error)
	CreateLanguageScore(ctx context.Context, userID uuid.UUID, in LanguageScoreInput) (resume.LanguageScore, error)
	UpdateLanguageScore(ctx context.Context, userID uuid.UUID, id uuid.UUID, in LanguageScoreInput) (resume.LanguageScore, error)
	DeleteLanguageScore(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ReorderLanguageScores(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

type ActivityUsecase interface {
	ListActivities(ctx context.Context, userID uuid.UUID) ([]resume.Activity, error)
	CreateActivity(ctx context.Context, userID uuid.UUID, in ActivityInput) (resume.Activity, error)
	UpdateActivity(ctx context.Context, userID uuid.UUID, id uuid.UUID, in ActivityInput) (resume.Activity, error)
	DeleteActivity(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ReorderActivities(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
}

func mapEntryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrEntryNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrEntryForbidden):
		return ErrForbidden
	default:
		return ErrInternal
	}
}

type Education struct {
	repo repository.EducationRepository
}

func NewEducationUsecase(repo repository.EducationRepository) *Education {
	return &Education{repo: repo}
}

func (u *Education) ListEducations(ctx context.Context, userID uuid.UUID) ([]resume.Education, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Education) CreateEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (resume.Education, error) {
	if strings.TrimSpace(in.School) == "" {
		return resume.Education{}, ErrInvalidInput
	}

	existing, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return resume.Education{}, ErrInternal
	}

	e := resume.Education{
		ID:        uuid.New(),
		UserID:    userID,
		School:    strings.TrimSpace(in.School),
		Degree:    strings.TrimSpace(in.Degree),
		Major:     strings.TrimSpace(in.Major),
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
		Position:  len(existing),
	}
	if err := u.repo.Create(ctx, e); err != nil {
		return resume.Education{}, ErrInternal
	}
	return e, nil
}

func (u *Education) UpdateEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID, in EducationInput) (resume.Education, error) {
	if id == uuid.Nil || strings.TrimSpace(in.School) == "" {
		return resume.Education{}, ErrInvalidInput
	}

	e := resume.Education{
		ID:        id,
		UserID:    userID,
		School:    strings.TrimSpace(in.School),
		Degree:    strings.TrimSpace(in.Degree),
		Major:     strings.TrimSpace(in.Major),
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
	}
	if err := u.repo.Update(ctx, e); err != nil {
		return resume.Education{}, mapEntryError(err)
	}
	return e, nil
}

func (u *Education) DeleteEducation(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return mapEntryError(err)
	}
	return nil
}

func (u *Education) ReorderEducations(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return ErrInvalidInput
	}
	if err := u.repo.UpdatePositions(ctx, userID, orderedIDs); err != nil {
		return mapEntryError(err)
	}
	return nil
}

type Certification struct {
	repo repository.CertificationRepository
}

func NewCertificationUsecase(repo repository.CertificationRepository) *Certification {
	return &Certification{repo: repo}
}

func (u *Certification) ListCertifications(ctx context.Context, userID uuid.UUID) ([]resume.Certification, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Certification) CreateCertification(ctx context.Context, userID uuid.UUID, in CertificationInput) (resume.Certification, error) {
	if strings.TrimSpace(in.Name) == "" {
		return resume.Certification{}, ErrInvalidInput
	}

	existing, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return resume.Certification{}, ErrInternal
	}

	c := resume.Certification{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     strings.TrimSpace(in.Name),
		Issuer:   strings.TrimSpace(in.Issuer),
		IssuedOn: in.IssuedOn,
		Position: len(existing),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return resume.Certification{}, ErrInternal
	}
	return c, nil
}

func (u *Certification) UpdateCertification(ctx context.Context, userID uuid.UUID, id uuid.UUID, in CertificationInput) (resume.Certification, error) {
	if id == uuid.Nil || strings.TrimSpace(in.Name) == "" {
		return resume.Certification{}, ErrInvalidInput
	}

	c := resume.Certification{
		ID:       id,
		UserID:   userID,
		Name:     strings.TrimSpace(in.Name),
		Issuer:   strings.TrimSpace(in.Issuer),
		IssuedOn: in.IssuedOn,
	}
	if err := u.repo.Update(ctx, c); err != nil {
		return resume.Certification{}, mapEntryError(err)
	}
	return c, nil
}

func (u *Certification) DeleteCertification(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return mapEntryError(err)
	}
	return nil
}

func (u *Certification) ReorderCertifications(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return ErrInvalidInput
	}
	if err := u.repo.UpdatePositions(ctx, userID, orderedIDs); err != nil {
		return mapEntryError(err)
	}
	return nil
}

type LanguageScore struct {
	repo repository.LanguageScoreRepository
}

func NewLanguageScoreUsecase(repo repository.LanguageScoreRepository) *LanguageScore {
	return &LanguageScore{repo: repo}
}

func (u *LanguageScore) ListLanguageScores(ctx context.Context, userID uuid.UUID) ([]resume.LanguageScore, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *LanguageScore) CreateLanguageScore(ctx context.Context, userID uuid.UUID, in LanguageScoreInput) (resume.LanguageScore, error) {
	if strings.TrimSpace(in.TestName) == "" || strings.TrimSpace(in.Score) == "" {
		return resume.LanguageScore{}, ErrInvalidInput
	}

	existing, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return resume.LanguageScore{}, ErrInternal
	}

	l := resume.LanguageScore{
		ID:       uuid.New(),
		UserID:   userID,
		TestName: strings.TrimSpace(in.TestName),
		Score:    strings.TrimSpace(in.Score),
		TakenOn:  in.TakenOn,
		Position: len(existing),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return resume.LanguageScore{}, ErrInternal
	}
	return l, nil
}

func (u *LanguageScore) UpdateLanguageScore(ctx context.Context, userID uuid.UUID, id uuid.UUID, in LanguageScoreInput) (resume.LanguageScore, error) {
	if id == uuid.Nil || strings.TrimSpace(in.TestName) == "" || strings.TrimSpace(in.Score) == "" {
		return resume.LanguageScore{}, ErrInvalidInput
	}

	l := resume.LanguageScore{
		ID:       id,
		UserID:   userID,
		TestName: strings.TrimSpace(in.TestName),
		Score:    strings.TrimSpace(in.Score),
		TakenOn:  in.TakenOn,
	}
	if err := u.repo.Update(ctx, l); err != nil {
		return resume.LanguageScore{}, mapEntryError(err)
	}
	return l, nil
}

func (u *LanguageScore) DeleteLanguageScore(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return mapEntryError(err)
	}
	return nil
}

func (u *LanguageScore) ReorderLanguageScores(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return ErrInvalidInput
	}
	if err := u.repo.UpdatePositions(ctx, userID, orderedIDs); err != nil {
		return mapEntryError(err)
	}
	return nil
}

type Activity struct {
	repo repository.ActivityRepository
}

func NewActivityUsecase(repo repository.ActivityRepository) *Activity {
	return &Activity{repo: repo}
}

func (u *Activity) ListActivities(ctx context.Context, userID uuid.UUID) ([]resume.Activity, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Activity) CreateActivity(ctx context.Context, userID uuid.UUID, in ActivityInput) (resume.Activity, error) {
	if strings.TrimSpace(in.Title) == "" {
		return resume.Activity{}, ErrInvalidInput
	}

	existing, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return resume.Activity{}, ErrInternal
	}

	a := resume.Activity{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
		Position:  len(existing),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return resume.Activity{}, ErrInternal
	}
	return a, nil
}

func (u *Activity) UpdateActivity(ctx context.Context, userID uuid.UUID, id uuid.UUID, in ActivityInput) (resume.Activity, error) {
	if id == uuid.Nil || strings.TrimSpace(in.Title) == "" {
		return resume.Activity{}, ErrInvalidInput
	}

	a := resume.Activity{
		ID:        id,
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		StartedOn: in.StartedOn,
		EndedOn:   in.EndedOn,
	}
	if err := u.repo.Update(ctx, a); err != nil {
		return resume.Activity{}, mapEntryError(err)
	}
	return a, nil
}

func (u *Activity) DeleteActivity(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return mapEntryError(err)
	}
	return nil
}

func (u *Activity) ReorderActivities(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return ErrInvalidInput
	}
	if err := u.repo.UpdatePositions(ctx, userID, orderedIDs); err != nil {
		return mapEntryError(err)
	}
	return nil
}
