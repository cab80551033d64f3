package handler

import (
	"beacon-port/internal/delivery/http/middleware"
	"beacon-port/internal/domain/resume"
	"beacon-port/internal/pkg/response"
	"beacon-port/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ExperienceHandler struct {
	uc      usecase.ExperienceUsecase
	resumes usecase.ResumeUsecase
}

type experienceRequest struct {
	Company   string `json:"company"`
	Title     string `json:"title"`
	StartedOn string `json:"started_on"`
	EndedOn   string `json:"ended_on"`
	Summary   string `json:"summary"`
	Skills    string `json:"skills"`
}

type skillTagResponse struct {
	SkillID uuid.UUID `json:"skill_id"`
	Name    string    `json:"name"`
}

type experienceResponse struct {
	ID        uuid.UUID          `json:"id"`
	Company   string             `json:"company"`
	Title     string             `json:"title"`
	StartedOn string             `json:"started_on"`
	EndedOn   string             `json:"ended_on"`
	Summary   string             `json:"summary"`
	Position  int                `json:"position"`
	Skills    []skillTagResponse `json:"skills"`
}

func NewExperienceHandler(uc usecase.ExperienceUsecase, resumes usecase.ResumeUsecase) *ExperienceHandler {
	return &ExperienceHandler{uc: uc, resumes: resumes}
}

func (h *ExperienceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/experiences")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/reorder", h.Reorder)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *ExperienceHandler) List(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListExperiences(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]experienceResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toExperienceResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ExperienceHandler) Create(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	in, err := h.bindInput(c)
	if err != nil {
		return err
	}

	created, err := h.uc.CreateExperience(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, "Experience created", toExperienceResponse(created))
}

func (h *ExperienceHandler) Update(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	in, err := h.bindInput(c)
	if err != nil {
		return err
	}

	updated, err := h.uc.UpdateExperience(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, toExperienceResponse(updated))
}

func (h *ExperienceHandler) Delete(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteExperience(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ExperienceHandler) Reorder(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	ids, err := req.uuids()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.ReorderExperiences(c.Context(), userID, ids); err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ExperienceHandler) bindInput(c fiber.Ctx) (usecase.ExperienceInput, error) {
	var req experienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.ExperienceInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	started, err := parseDate(req.StartedOn)
	if err != nil {
		return usecase.ExperienceInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid started_on", nil, err)
	}
	ended, err := parseDate(req.EndedOn)
	if err != nil {
		return usecase.ExperienceInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid ended_on", nil, err)
	}

	return usecase.ExperienceInput{
		Company:   req.Company,
		Title:     req.Title,
		StartedOn: started,
		EndedOn:   ended,
		Summary:   req.Summary,
		SkillsRaw: req.Skills,
	}, nil
}

func toExperienceResponse(e resume.Experience) experienceResponse {
	return experienceResponse{
		ID:        e.ID,
		Company:   e.Company,
		Title:     e.Title,
		StartedOn: fmtDate(e.StartedOn),
		EndedOn:   fmtDate(e.EndedOn),
		Summary:   e.Summary,
		Position:  e.Position,
		Skills:    toSkillTagResponses(e.Skills),
	}
}

func toSkillTagResponses(tags []resume.SkillTag) []skillTagResponse {
	out := make([]skillTagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, skillTagResponse{SkillID: t.SkillID, Name: t.Name})
	}
	return out
}
