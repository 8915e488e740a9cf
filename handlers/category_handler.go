package handlers

import (
	"errors"

	"github.com/anjiri1684/trivia_api/apperrors"
	"github.com/anjiri1684/trivia_api/models"
	"github.com/anjiri1684/trivia_api/services"
	"github.com/gofiber/fiber/v2"
)

func (h *TriviaHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.svc.ListCategories(c.UserContext())
	if err != nil {
		return apperrors.BadRequest(err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"categories": models.CategoryMap(categories),
	})
}

func (h *TriviaHandler) GetCategoryQuestions(c *fiber.Ctx) error {
	categoryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.svc.QuestionsByCategory(c.UserContext(), categoryID)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return apperrors.NotFound(err)
		}
		return apperrors.BadRequest(err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"questions":        models.FormatQuestions(res.Questions),
		"total_questions":  res.Total,
		"current_category": res.CategoryID,
	})
}
