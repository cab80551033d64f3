package handler

import (
	"strings"

	"beacon-port/internal/delivery/http/middleware"
	"beacon-port/internal/domain/resume"
	"beacon-port/internal/pkg/response"
	"beacon-port/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const maxPhotoBytes = 5 << 20

type ProfileHandler struct {
	uc         usecase.ProfileUsecase
	resumes    usecase.ResumeUsecase
	publicBase string
}

type profileRequest struct {
	FullName  string `json:"full_name"`
	Headline  string `json:"headline"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BlogURL   string `json:"blog_url"`
	GithubURL string `json:"github_url"`
}

type visibilityRequest struct {
	Public bool `json:"public"`
}

type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BlogURL   string    `json:"blog_url"`
	GithubURL string    `json:"github_url"`
	PhotoURL  string    `json:"photo_url"`
	Public    bool      `json:"public"`
	Slug      string    `json:"slug"`
}

func NewProfileHandler(uc usecase.ProfileUsecase, resumes usecase.ResumeUsecase, publicBase string) *ProfileHandler {
	return &ProfileHandler{uc: uc, resumes: resumes, publicBase: strings.TrimRight(publicBase, "/")}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/profile")
	grp.Get("/", h.Get)
	grp.Put("/", h.Update)
	grp.Post("/photo", h.UploadPhoto)
	grp.Put("/visibility", h.SetVisibility)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	p, photoURL, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, h.toResponse(p, photoURL))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, usecase.ProfileInput{
		FullName:  req.FullName,
		Headline:  req.Headline,
		Email:     req.Email,
		Phone:     req.Phone,
		BlogURL:   req.BlogURL,
		GithubURL: req.GithubURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, h.toResponse(p, ""))
}

func (h *ProfileHandler) UploadPhoto(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fh.Size <= 0 || fh.Size > maxPhotoBytes {
		return middleware.NewAppError(fiber.StatusBadRequest, "Photo too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	defer f.Close()

	url, err := h.uc.UploadPhoto(c.Context(), userID, f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"photo_url": url})
}

func (h *ProfileHandler) SetVisibility(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req visibilityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	slug, err := h.resumes.SetVisibility(c.Context(), userID, req.Public)
	if err != nil {
		return mapUsecaseError(err)
	}

	data := map[string]any{
		"public": req.Public,
		"slug":   slug,
	}
	if req.Public && h.publicBase != "" {
		data["share_url"] = h.publicBase + "/p/" + slug
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ProfileHandler) toResponse(p resume.Profile, photoURL string) profileResponse {
	return profileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Headline:  p.Headline,
		Email:     p.Email,
		Phone:     p.Phone,
		BlogURL:   p.BlogURL,
		GithubURL: p.GithubURL,
		PhotoURL:  photoURL,
		Public:    p.Public,
		Slug:      p.Slug,
	}
}
