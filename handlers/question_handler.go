package handlers

import (
	"errors"

	"github.com/anjiri1684/trivia_api/apperrors"
	"github.com/anjiri1684/trivia_api/database"
	"github.com/anjiri1684/trivia_api/models"
	"github.com/anjiri1684/trivia_api/services"
	"github.com/gofiber/fiber/v2"
)

type addQuestionRequest struct {
	Question   *string `json:"question" validate:"required,min=1"`
	Answer     *string `json:"answer" validate:"required,min=1"`
	Category   *int    `json:"category" validate:"required"`
	Difficulty *int    `json:"difficulty" validate:"required"`
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"required"`
}

func (h *TriviaHandler) GetQuestions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	res, err := h.svc.ListQuestions(c.UserContext(), page)
	if err != nil {
		if errors.Is(err, database.ErrPageNotFound) {
			return apperrors.NotFound(err)
		}
		return apperrors.BadRequest(err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"questions":        models.FormatQuestions(res.Questions),
		"total_questions":  res.Total,
		"current_category": res.CurrentCategories,
		"categories":       res.Categories,
	})
}

func (h *TriviaHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteQuestion(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			return apperrors.NotFound(err)
		}
		return apperrors.BadRequest(err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"question": id,
	})
}

// PostQuestions searches when the body carries a searchTerm and adds a new
// question otherwise.
func (h *TriviaHandler) PostQuestions(c *fiber.Ctx) error {
	b, err := parseBody(c)
	if err != nil {
		return err
	}

	if b.has("searchTerm") {
		return h.searchQuestions(c, b)
	}
	return h.addQuestion(c, b)
}

func (h *TriviaHandler) addQuestion(c *fiber.Ctx, b body) error {
	var req addQuestionRequest
	if err := b.bind(&req); err != nil {
		return err
	}

	question, err := h.svc.AddQuestion(c.UserContext(), services.NewQuestion{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   *req.Category,
		Difficulty: *req.Difficulty,
	})
	if err != nil {
		return apperrors.BadRequest(err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"question": question.Format(),
	})
}

func (h *TriviaHandler) searchQuestions(c *fiber.Ctx, b body) error {
	var req searchRequest
	if err := b.bind(&req); err != nil {
		return err
	}

	res, err := h.svc.SearchQuestions(c.UserContext(), *req.SearchTerm)
	if err != nil {
		return apperrors.BadRequest(err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"questions":        models.FormatQuestions(res.Questions),
		"total_questions":  res.Total,
		"current_category": res.CurrentCategories,
	})
}
