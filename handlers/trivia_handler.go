package handlers

import (
	"context"

	"github.com/anjiri1684/trivia_api/models"
	"github.com/anjiri1684/trivia_api/services"
)

type TriviaService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListQuestions(ctx context.Context, page int) (*services.QuestionPage, error)
	DeleteQuestion(ctx context.Context, id int) error
	AddQuestion(ctx context.Context, in services.NewQuestion) (*models.Question, error)
	SearchQuestions(ctx context.Context, term string) (*services.SearchResult, error)
	QuestionsByCategory(ctx context.Context, categoryID int) (*services.CategoryQuestions, error)
	NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*models.Question, error)
}

type TriviaHandler struct {
	svc TriviaService
}

func NewTriviaHandler(svc TriviaService) *TriviaHandler {
	return &TriviaHandler{svc: svc}
}
