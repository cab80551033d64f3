package routes

import (
	v1 "beacon-port/internal/delivery/http/routes/v1"
	"beacon-port/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, d Deps, resumes usecase.ResumeUsecase) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps{
		Config:  d.Config,
		DB:      d.DB,
		Storage: d.Storage,
		Resumes: resumes,
		Logger:  d.Logger,
	})
}
