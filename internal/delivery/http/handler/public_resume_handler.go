package handler

import (
	"strings"

	"beacon-port/internal/delivery/http/middleware"
	"beacon-port/internal/domain/resume"
	"beacon-port/internal/pkg/response"
	"beacon-port/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// PublicResumeHandler serves the unauthenticated share page data. Private
// and unknown slugs both answer 404.
type PublicResumeHandler struct {
	uc usecase.ResumeUsecase
}

type publicProfileResponse struct {
	FullName  string `json:"full_name"`
	Headline  string `json:"headline"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BlogURL   string `json:"blog_url"`
	GithubURL string `json:"github_url"`
	PhotoURL  string `json:"photo_url"`
}

type publicResumeResponse struct {
	Profile        publicProfileResponse   `json:"profile"`
	Experiences    []experienceResponse    `json:"experiences"`
	SideProjects   []sideProjectResponse   `json:"side_projects"`
	Educations     []educationResponse     `json:"educations"`
	Certifications []certificationResponse `json:"certifications"`
	LanguageScores []languageScoreResponse `json:"language_scores"`
	Activities     []activityResponse      `json:"activities"`
}

func NewPublicResumeHandler(uc usecase.ResumeUsecase) *PublicResumeHandler {
	return &PublicResumeHandler{uc: uc}
}

func (h *PublicResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/p/:slug", h.Get)
}

func (h *PublicResumeHandler) Get(c fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, nil)
	}

	pub, photoURL, err := h.uc.GetPublicResume(c.Context(), slug)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toPublicResumeResponse(pub, photoURL))
}

func toPublicResumeResponse(pub resume.Public, photoURL string) publicResumeResponse {
	res := publicResumeResponse{
		Profile: publicProfileResponse{
			FullName:  pub.Profile.FullName,
			Headline:  pub.Profile.Headline,
			Email:     pub.Profile.Email,
			Phone:     pub.Profile.Phone,
			BlogURL:   pub.Profile.BlogURL,
			GithubURL: pub.Profile.GithubURL,
			PhotoURL:  photoURL,
		},
		Experiences:    make([]experienceResponse, 0, len(pub.Experiences)),
		SideProjects:   make([]sideProjectResponse, 0, len(pub.SideProjects)),
		Educations:     make([]educationResponse, 0, len(pub.Educations)),
		Certifications: make([]certificationResponse, 0, len(pub.Certifications)),
		LanguageScores: make([]languageScoreResponse, 0, len(pub.LanguageScores)),
		Activities:     make([]activityResponse, 0, len(pub.Activities)),
	}

	for _, e := range pub.Experiences {
		res.Experiences = append(res.Experiences, toExperienceResponse(e))
	}
	for _, p := range pub.SideProjects {
		res.SideProjects = append(res.SideProjects, toSideProjectResponse(p))
	}
	for _, e := range pub.Educations {
		res.Educations = append(res.Educations, toEducationResponse(e))
	}
	for _, ct := range pub.Certifications {
		res.Certifications = append(res.Certifications, toCertificationResponse(ct))
	}
	for _, l := range pub.LanguageScores {
		res.LanguageScores = append(res.LanguageScores, toLanguageScoreResponse(l))
	}
	for _, a := range pub.Activities {
		res.Activities = append(res.Activities, toActivityResponse(a))
	}
	return res
}
