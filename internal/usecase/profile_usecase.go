package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"beacon-port/internal/domain/resume"
	"beacon-port/internal/repository"

	"github.com/google/uuid"
)

// PhotoStorage is the object-store surface the profile flow needs.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

type ProfileInput struct {
	FullName  string
	Headline  string
	Email     string
	Phone     string
	BlogURL   string
	GithubURL string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (resume.Profile, string, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (resume.Profile, error)
	UploadPhoto(ctx context.Context, userID uuid.UUID, r io.Reader, size int64, contentType string) (string, error)
}

type Profile struct {
	repo    repository.ProfileRepository
	storage PhotoStorage
}

func NewProfileUsecase(repo repository.ProfileRepository, storage PhotoStorage) *Profile {
	return &Profile{repo: repo, storage: storage}
}

func (u *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (resume.Profile, string, error) {
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return resume.Profile{}, "", ErrNotFound
		}
		return resume.Profile{}, "", ErrInternal
	}

	photoURL := ""
	if p.PhotoKey != "" && u.storage != nil {
		if url, err := u.storage.PresignedGetURL(ctx, p.PhotoKey); err == nil {
			photoURL = url
		}
	}
	return p, photoURL, nil
}

func (u *Profile) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (resume.Profile, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return resume.Profile{}, ErrInvalidInput
	}

	p := resume.Profile{
		UserID:    userID,
		FullName:  strings.TrimSpace(in.FullName),
		Headline:  strings.TrimSpace(in.Headline),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		BlogURL:   strings.TrimSpace(in.BlogURL),
		GithubURL: strings.TrimSpace(in.GithubURL),
	}
	if err := u.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return resume.Profile{}, ErrNotFound
		}
		return resume.Profile{}, ErrInternal
	}

	updated, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return resume.Profile{}, ErrInternal
	}
	return updated, nil
}

func (u *Profile) UploadPhoto(ctx context.Context, userID uuid.UUID, r io.Reader, size int64, contentType string) (string, error) {
	if u.storage == nil {
		return "", ErrInternal
	}
	if r == nil || size <= 0 {
		return "", ErrInvalidInput
	}

	key := "photos/" + userID.String() + "/" + uuid.NewString()
	if err := u.storage.Upload(ctx, key, r, size, contentType); err != nil {
		return "", ErrInternal
	}

	if err := u.repo.SetPhotoKey(ctx, userID, key); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return "", ErrNotFound
		}
		return "", ErrInternal
	}

	url, err := u.storage.PresignedGetURL(ctx, key)
	if err != nil {
		return "", nil
	}
	return url, nil
}
