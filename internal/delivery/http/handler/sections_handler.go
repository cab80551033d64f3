package handler

import (
	"beacon-port/internal/delivery/http/middleware"
	"beacon-port/internal/domain/resume"
	"beacon-port/internal/pkg/response"
	"beacon-port/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Handlers for the skill-free sections. Same route shape as experiences,
// minus the skills field.

type educationRequest struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Major     string `json:"major"`
	StartedOn string `json:"started_on"`
	EndedOn   string `json:"ended_on"`
}

type educationResponse struct {
	ID        uuid.UUID `json:"id"`
	School    string    `json:"school"`
	Degree    string    `json:"degree"`
	Major     string    `json:"major"`
	StartedOn string    `json:"started_on"`
	EndedOn   string    `json:"ended_on"`
	Position  int       `json:"position"`
}

type certificationRequest struct {
	Name     string `json:"name"`
	Issuer   string `json:"issuer"`
	IssuedOn string `json:"issued_on"`
}

type certificationResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Issuer   string    `json:"issuer"`
	IssuedOn string    `json:"issued_on"`
	Position int       `json:"position"`
}

type languageScoreRequest struct {
	TestName string `json:"test_name"`
	Score    string `json:"score"`
	TakenOn  string `json:"taken_on"`
}

type languageScoreResponse struct {
	ID       uuid.UUID `json:"id"`
	TestName string    `json:"test_name"`
	Score    string    `json:"score"`
	TakenOn  string    `json:"taken_on"`
	Position int       `json:"position"`
}

type activityRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	StartedOn string `json:"started_on"`
	EndedOn   string `json:"ended_on"`
}

type activityResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	StartedOn string    `json:"started_on"`
	EndedOn   string    `json:"ended_on"`
	Position  int       `json:"position"`
}

type SectionsHandler struct {
	educations     usecase.EducationUsecase
	certifications usecase.CertificationUsecase
	languageScores usecase.LanguageScoreUsecase
	activities     usecase.ActivityUsecase
	resumes        usecase.ResumeUsecase
}

func NewSectionsHandler(
	educations usecase.EducationUsecase,
	certifications usecase.CertificationUsecase,
	languageScores usecase.LanguageScoreUsecase,
	activities usecase.ActivityUsecase,
	resumes usecase.ResumeUsecase,
) *SectionsHandler {
	return &SectionsHandler{
		educations:     educations,
		certifications: certifications,
		languageScores: languageScores,
		activities:     activities,
		resumes:        resumes,
	}
}

func (h *SectionsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	edu := r.Group("/educations")
	edu.Get("/", h.ListEducations)
	edu.Post("/", h.CreateEducation)
	edu.Put("/reorder", h.ReorderEducations)
	edu.Put("/:id", h.UpdateEducation)
	edu.Delete("/:id", h.DeleteEducation)

	cert := r.Group("/certifications")
	cert.Get("/", h.ListCertifications)
	cert.Post("/", h.CreateCertification)
	cert.Put("/reorder", h.ReorderCertifications)
	cert.Put("/:id", h.UpdateCertification)
	cert.Delete("/:id", h.DeleteCertification)

	lang := r.Group("/language-scores")
	lang.Get("/", h.ListLanguageScores)
	lang.Post("/", h.CreateLanguageScore)
	lang.Put("/reorder", h.ReorderLanguageScores)
	lang.Put("/:id", h.UpdateLanguageScore)
	lang.Delete("/:id", h.DeleteLanguageScore)

	act := r.Group("/activities")
	act.Get("/", h.ListActivities)
	act.Post("/", h.CreateActivity)
	act.Put("/reorder", h.ReorderActivities)
	act.Put("/:id", h.UpdateActivity)
	act.Delete("/:id", h.DeleteActivity)
}

func (h *SectionsHandler) ListEducations(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	items, err := h.educations.ListEducations(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	res := make([]educationResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toEducationResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SectionsHandler) CreateEducation(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	in, err := bindEducationInput(c)
	if err != nil {
		return err
	}
	created, err := h.educations.CreateEducation(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, "Education created", toEducationResponse(created))
}

func (h *SectionsHandler) UpdateEducation(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	in, err := bindEducationInput(c)
	if err != nil {
		return err
	}
	updated, err := h.educations.UpdateEducation(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, toEducationResponse(updated))
}

func (h *SectionsHandler) DeleteEducation(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.educations.DeleteEducation(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) ReorderEducations(c fiber.Ctx) error {
	userID, ids, err := h.bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.educations.ReorderEducations(c.Context(), userID, ids); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) ListCertifications(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	items, err := h.certifications.ListCertifications(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	res := make([]certificationResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toCertificationResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SectionsHandler) CreateCertification(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	in, err := bindCertificationInput(c)
	if err != nil {
		return err
	}
	created, err := h.certifications.CreateCertification(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, "Certification created", toCertificationResponse(created))
}

func (h *SectionsHandler) UpdateCertification(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	in, err := bindCertificationInput(c)
	if err != nil {
		return err
	}
	updated, err := h.certifications.UpdateCertification(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, toCertificationResponse(updated))
}

func (h *SectionsHandler) DeleteCertification(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.certifications.DeleteCertification(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) ReorderCertifications(c fiber.Ctx) error {
	userID, ids, err := h.bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.certifications.ReorderCertifications(c.Context(), userID, ids); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) ListLanguageScores(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	items, err := h.languageScores.ListLanguageScores(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	res := make([]languageScoreResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toLanguageScoreResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SectionsHandler) CreateLanguageScore(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	in, err := bindLanguageScoreInput(c)
	if err != nil {
		return err
	}
	created, err := h.languageScores.CreateLanguageScore(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, "Language score created", toLanguageScoreResponse(created))
}

func (h *SectionsHandler) UpdateLanguageScore(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	in, err := bindLanguageScoreInput(c)
	if err != nil {
		return err
	}
	updated, err := h.languageScores.UpdateLanguageScore(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, toLanguageScoreResponse(updated))
}

func (h *SectionsHandler) DeleteLanguageScore(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.languageScores.DeleteLanguageScore(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) ReorderLanguageScores(c fiber.Ctx) error {
	userID, ids, err := h.bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.languageScores.ReorderLanguageScores(c.Context(), userID, ids); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) ListActivities(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	items, err := h.activities.ListActivities(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	res := make([]activityResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toActivityResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SectionsHandler) CreateActivity(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	in, err := bindActivityInput(c)
	if err != nil {
		return err
	}
	created, err := h.activities.CreateActivity(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, "Activity created", toActivityResponse(created))
}

func (h *SectionsHandler) UpdateActivity(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	in, err := bindActivityInput(c)
	if err != nil {
		return err
	}
	updated, err := h.activities.UpdateActivity(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, toActivityResponse(updated))
}

func (h *SectionsHandler) DeleteActivity(c fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.activities.DeleteActivity(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) ReorderActivities(c fiber.Ctx) error {
	userID, ids, err := h.bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.activities.ReorderActivities(c.Context(), userID, ids); err != nil {
		return mapUsecaseError(err)
	}
	h.resumes.InvalidatePublic(c.Context(), userID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SectionsHandler) bindReorder(c fiber.Ctx) (uuid.UUID, []uuid.UUID, error) {
	userID, err := requireUserID(c)
	if err != nil {
		return uuid.Nil, nil, err
	}
	var req reorderRequest
	if err := c.Bind().Body(&req); err != nil {
		return uuid.Nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	ids, err := req.uuids()
	if err != nil {
		return uuid.Nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return userID, ids, nil
}

func bindEducationInput(c fiber.Ctx) (usecase.EducationInput, error) {
	var req educationRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.EducationInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	started, err := parseDate(req.StartedOn)
	if err != nil {
		return usecase.EducationInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid started_on", nil, err)
	}
	ended, err := parseDate(req.EndedOn)
	if err != nil {
		return usecase.EducationInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid ended_on", nil, err)
	}
	return usecase.EducationInput{
		School:    req.School,
		Degree:    req.Degree,
		Major:     req.Major,
		StartedOn: started,
		EndedOn:   ended,
	}, nil
}

func bindCertificationInput(c fiber.Ctx) (usecase.CertificationInput, error) {
	var req certificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.CertificationInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	issued, err := parseDate(req.IssuedOn)
	if err != nil {
		return usecase.CertificationInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid issued_on", nil, err)
	}
	return usecase.CertificationInput{
		Name:     req.Name,
		Issuer:   req.Issuer,
		IssuedOn: issued,
	}, nil
}

func bindLanguageScoreInput(c fiber.Ctx) (usecase.LanguageScoreInput, error) {
	var req languageScoreRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.LanguageScoreInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	taken, err := parseDate(req.TakenOn)
	if err != nil {
		return usecase.LanguageScoreInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid taken_on", nil, err)
	}
	return usecase.LanguageScoreInput{
		TestName: req.TestName,
		Score:    req.Score,
		TakenOn:  taken,
	}, nil
}

func bindActivityInput(c fiber.Ctx) (usecase.ActivityInput, error) {
	var req activityRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.ActivityInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	started, err := parseDate(req.StartedOn)
	if err != nil {
		return usecase.ActivityInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid started_on", nil, err)
	}
	ended, err := parseDate(req.EndedOn)
	if err != nil {
		return usecase.ActivityInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid ended_on", nil, err)
	}
	return usecase.ActivityInput{
		Title:     req.Title,
		Body:      req.Body,
		StartedOn: started,
		EndedOn:   ended,
	}, nil
}

func toEducationResponse(e resume.Education) educationResponse {
	return educationResponse{
		ID:        e.ID,
		School:    e.School,
		Degree:    e.Degree,
		Major:     e.Major,
		StartedOn: fmtDate(e.StartedOn),
		EndedOn:   fmtDate(e.EndedOn),
		Position:  e.Position,
	}
}

func toCertificationResponse(c resume.Certification) certificationResponse {
	return certificationResponse{
		ID:       c.ID,
		Name:     c.Name,
		Issuer:   c.Issuer,
		IssuedOn: fmtDate(c.IssuedOn),
		Position: c.Position,
	}
}

func toLanguageScoreResponse(l resume.LanguageScore) languageScoreResponse {
	return languageScoreResponse{
		ID:       l.ID,
		TestName: l.TestName,
		Score:    l.Score,
		TakenOn:  fmtDate(l.TakenOn),
		Position: l.Position,
	}
}

func toActivityResponse(a resume.Activity) activityResponse {
	return activityResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		StartedOn: fmtDate(a.StartedOn),
		EndedOn:   fmtDate(a.EndedOn),
		Position:  a.Position,
	}
}
