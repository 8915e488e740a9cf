package routes

import (
	"github.com/anjiri1684/trivia_api/handlers"
	"github.com/gofiber/fiber/v2"
)

func TriviaRoutes(router fiber.Router, h *handlers.TriviaHandler) {
	categories := router.Group("/categories")
	categories.Get("", h.GetCategories)
	categories.Get("/:id/questions", h.GetCategoryQuestions)

	questions := router.Group("/questions")
	questions.Get("", h.GetQuestions)
	questions.Post("", h.PostQuestions)
	questions.Delete("/:id", h.DeleteQuestion)

	router.Post("/quizzes", h.PlayQuiz)
}
