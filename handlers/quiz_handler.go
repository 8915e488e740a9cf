package handlers

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/anjiri1684/trivia_api/apperrors"
	"github.com/gofiber/fiber/v2"
)

type quizRequest struct {
	PreviousQuestions *[]int        `json:"previous_questions" validate:"required"`
	QuizCategory      *quizCategory `json:"quiz_category" validate:"required"`
}

type quizCategory struct {
	ID   *categoryID `json:"id" validate:"required"`
	Type string      `json:"type"`
}

// categoryID accepts a JSON number or a numeric string; the web client sends
// category ids as strings.
type categoryID int

func (id *categoryID) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*id = categoryID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*id = categoryID(n)
			return nil
		}
	}

	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(0)}
}

func (h *TriviaHandler) PlayQuiz(c *fiber.Ctx) error {
	b, err := parseBody(c)
	if err != nil {
		return err
	}

	var req quizRequest
	if err := b.bind(&req); err != nil {
		return err
	}

	question, err := h.svc.NextQuizQuestion(c.UserContext(), int(*req.QuizCategory.ID), *req.PreviousQuestions)
	if err != nil {
		return apperrors.BadRequest(err)
	}

	var formatted any
	if question != nil {
		formatted = question.Format()
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"question": formatted,
	})
}
