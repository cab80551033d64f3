package handler

import (
	"beacon-port/internal/delivery/http/middleware"
	"beacon-port/internal/domain/resume"
	"beacon-port/internal/pkg/response"
	"beacon-port/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SideProjectHandler struct {
	uc      usecase.SideProjectUsecase
	resumes usecase.ResumeUsecase
}

type sideProjectRequest struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	StartedOn string `json:"started_on"`
	EndedOn   string `json:"ended_on"`
	Summary   string `json:"summary"`
	Skills    string `json:"skills"`
}

type sideProjectResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	URL       string             `json:"url"`
	StartedOn string             `json:"started_on"`
	EndedOn   string             `json:"ended_on"`
	Summary   string             `json:"summary"`
	Position  int                `json:"position"`
	Skills    []skillTagResponse `json:"skills"`
}

func NewSideProjectHandler(uc usecase.SideProjectUsecase, resumes usecase.ResumeUsecase) *SideProjectHandler {
	return &SideProjectHandler{uc: uc, resumes: resumes}
}

func (h *SideProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/side-projects")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/reorder", h.Reorder)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *SideProjectHandler) List(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListSideProjects(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]sideProjectResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toSideProjectResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SideProjectHandler) Create(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	in, err := h.bindInput(c)
	if err != nil {
		return err
	}

	created, err := h.uc.CreateSideProject(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, "Side project created", toSideProjectResponse(created))
}

func (h *SideProjectHandler) Update(c fiber.Ctx) error {
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

	updated, err := h.uc.UpdateSideProject(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, toSideProjectResponse(updated))
}

func (h *SideProjectHandler) Delete(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteSideProject(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SideProjectHandler) Reorder(c fiber.Ctx) error {
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

	if err := h.uc.ReorderSideProjects(c.Context(), userID, ids); err != nil {
		return mapUsecaseError(err)
	}

	h.resumes.InvalidatePublic(c.Context(), userID)

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SideProjectHandler) bindInput(c fiber.Ctx) (usecase.SideProjectInput, error) {
	var req sideProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.SideProjectInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	started, err := parseDate(req.StartedOn)
	if err != nil {
		return usecase.SideProjectInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid started_on", nil, err)
	}
	ended, err := parseDate(req.EndedOn)
	if err != nil {
		return usecase.SideProjectInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid ended_on", nil, err)
	}

	return usecase.SideProjectInput{
		Name:      req.Name,
		URL:       req.URL,
		StartedOn: started,
		EndedOn:   ended,
		Summary:   req.Summary,
		SkillsRaw: req.Skills,
	}, nil
}

func toSideProjectResponse(p resume.SideProject) sideProjectResponse {
	return sideProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		URL:       p.URL,
		StartedOn: fmtDate(p.StartedOn),
		EndedOn:   fmtDate(p.EndedOn),
		Summary:   p.Summary,
		Position:  p.Position,
		Skills:    toSkillTagResponses(p.Skills),
	}
}
