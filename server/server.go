package server

import (
	"time"

	"github.com/anjiri1684/trivia_api/handlers"
	"github.com/anjiri1684/trivia_api/middleware"
	"github.com/anjiri1684/trivia_api/routes"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func New(svc handlers.TriviaService, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Trivia API",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler(log),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Recover(log))
	app.Use(middleware.CORS())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	routes.TriviaRoutes(app, handlers.NewTriviaHandler(svc))

	return app
}
