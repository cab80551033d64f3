package routes

import (
	"log"

	"beacon-port/internal/config"
	"beacon-port/internal/database"
	"beacon-port/internal/delivery/http/handler"
	"beacon-port/internal/repository"
	"beacon-port/internal/usecase"
	"beacon-port/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   usecase.ResumeCache
	Storage usecase.PhotoStorage
	Hub     *ws.Hub
	Logger  *log.Logger
}

type Registry struct {
	deps    Deps
	resumes usecase.ResumeUsecase
	health  *handler.HealthHandler
	public  *handler.PublicResumeHandler
	preview *ws.Handler
}

func NewRegistry(d Deps) *Registry {
	if d.Logger == nil {
		d.Logger = log.Default()
	}

	resumes := buildResumeUsecase(d)

	return &Registry{
		deps:    d,
		resumes: resumes,
		health:  handler.NewHealthHandler(d.DB),
		public:  handler.NewPublicResumeHandler(resumes),
		preview: ws.NewHandler(d.Hub, d.Logger),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerPublic(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerPublic(app *fiber.App) {
	r.public.RegisterRoutes(app)
	app.Get("/ws/preview/:slug", r.preview.HandlePreviewWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps, r.resumes)
}

func buildResumeUsecase(d Deps) usecase.ResumeUsecase {
	return usecase.NewResumeUsecase(usecase.ResumeDeps{
		Profiles:       repository.NewPostgresProfileRepository(d.DB),
		Experiences:    repository.NewPostgresExperienceRepository(d.DB),
		SideProjects:   repository.NewPostgresSideProjectRepository(d.DB),
		Educations:     repository.NewPostgresEducationRepository(d.DB),
		Certifications: repository.NewPostgresCertificationRepository(d.DB),
		LanguageScores: repository.NewPostgresLanguageScoreRepository(d.DB),
		Activities:     repository.NewPostgresActivityRepository(d.DB),
		Links:          repository.NewPostgresSkillLinkRepository(d.DB),
		Cache:          d.Cache,
		CacheTTL:       d.Config.Redis.TTL,
		Storage:        d.Storage,
		Logger:         d.Logger,
	})
}
