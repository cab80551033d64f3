package v1

import (
	"log"

	"beacon-port/internal/config"
	"beacon-port/internal/database"
	"beacon-port/internal/delivery/http/handler"
	"beacon-port/internal/delivery/http/middleware"
	"beacon-port/internal/pkg/jwt"
	"beacon-port/internal/repository"
	"beacon-port/internal/usecase"
	ucauth "beacon-port/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Storage usecase.PhotoStorage
	Resumes usecase.ResumeUsecase
	Logger  *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}

	jwtSvc := jwt.NewHMACService(
		d.Config.JWT.AccessSecret,
		d.Config.JWT.RefreshSecret,
		d.Config.JWT.AccessExpiresIn,
		d.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(d.DB)
	profileRepo := repository.NewPostgresProfileRepository(d.DB)
	skillRepo := repository.NewPostgresSkillRepository(d.DB)
	linkRepo := repository.NewPostgresSkillLinkRepository(d.DB)
	experienceRepo := repository.NewPostgresExperienceRepository(d.DB)
	sideProjectRepo := repository.NewPostgresSideProjectRepository(d.DB)
	educationRepo := repository.NewPostgresEducationRepository(d.DB)
	certificationRepo := repository.NewPostgresCertificationRepository(d.DB)
	languageScoreRepo := repository.NewPostgresLanguageScoreRepository(d.DB)
	activityRepo := repository.NewPostgresActivityRepository(d.DB)

	resolver := usecase.NewSkillResolver(skillRepo, d.Logger)

	authSvc := ucauth.NewService(userRepo, profileRepo)
	authUC := usecase.NewAuthUsecase(authSvc, userRepo, jwtSvc)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, d.Storage)
	experienceUC := usecase.NewExperienceUsecase(experienceRepo, linkRepo, resolver, d.Logger)
	sideProjectUC := usecase.NewSideProjectUsecase(sideProjectRepo, linkRepo, resolver, d.Logger)
	educationUC := usecase.NewEducationUsecase(educationRepo)
	certificationUC := usecase.NewCertificationUsecase(certificationRepo)
	languageScoreUC := usecase.NewLanguageScoreUsecase(languageScoreRepo)
	activityUC := usecase.NewActivityUsecase(activityRepo)

	authHandler := handler.NewAuthHandler(authUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	profileHandler := handler.NewProfileHandler(profileUC, d.Resumes, d.Config.App.PublicBase)
	experienceHandler := handler.NewExperienceHandler(experienceUC, d.Resumes)
	sideProjectHandler := handler.NewSideProjectHandler(sideProjectUC, d.Resumes)
	sectionsHandler := handler.NewSectionsHandler(educationUC, certificationUC, languageScoreUC, activityUC, d.Resumes)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	skillHandler.RegisterRoutes(protected)
	profileHandler.RegisterRoutes(protected)
	experienceHandler.RegisterRoutes(protected)
	sideProjectHandler.RegisterRoutes(protected)
	sectionsHandler.RegisterRoutes(protected)
}
