package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/anjiri1684/trivia_api/database"
	"github.com/anjiri1684/trivia_api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	QuestionsPerPage = 10

	// AllCategories is the quiz category id that draws from every question.
	AllCategories = 0
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type TriviaService struct {
	db   *gorm.DB
	log  *zap.Logger
	pick func(n int) int
}

func NewTriviaService(db *gorm.DB, log *zap.Logger) *TriviaService {
	return &TriviaService{db: db, log: log, pick: rand.IntN}
}

type QuestionPage struct {
	Questions         []models.Question
	Total             int64
	CurrentCategories []int
	Categories        map[int]string
}

type SearchResult struct {
	Questions         []models.Question
	Total             int64
	CurrentCategories []int
}

type CategoryQuestions struct {
	Questions  []models.Question
	Total      int64
	CategoryID int
}

type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

func (s *TriviaService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	query := s.db.WithContext(ctx).Model(&models.Question{}).Order("category asc").Order("id asc")

	p, err := database.Paginate[models.Question](query, page, QuestionsPerPage)
	if err != nil {
		return nil, fmt.Errorf("list questions page %d: %w", page, err)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:         p.Items,
		Total:             p.Total,
		CurrentCategories: models.DistinctCategories(p.Items),
		Categories:        models.CategoryMap(categories),
	}, nil
}

func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) error {
	err := database.WithinTx(ctx, s.db, func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}

	s.log.Info("question deleted", zap.Int("question_id", id))
	return nil
}

func (s *TriviaService) AddQuestion(ctx context.Context, in NewQuestion) (*models.Question, error) {
	question := models.Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	}

	err := database.WithinTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Create(&question).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}

	s.log.Info("question added", zap.Int("question_id", question.ID), zap.Int("category", question.Category))
	return &question, nil
}

// SearchQuestions returns every question whose text contains term, ignoring
// case. Both sides are folded by the database's LOWER so the match follows its
// collation. Total is the number of stored questions, not the number of matches.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string) (*SearchResult, error) {
	db := s.db.WithContext(ctx)

	var matches []models.Question
	err := db.Where("LOWER(question) LIKE LOWER(?) ESCAPE '\\'", likePattern(term)).
		Order("id asc").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}

	total, err := s.countQuestions(db)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Questions:         matches,
		Total:             total,
		CurrentCategories: models.DistinctCategories(matches),
	}, nil
}

// QuestionsByCategory returns every question in the category. Total is the
// number of stored questions across all categories.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID int) (*CategoryQuestions, error) {
	db := s.db.WithContext(ctx)

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", categoryID, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("find category %d: %w", categoryID, err)
	}

	var questions []models.Question
	if err := db.Where("category = ?", categoryID).Order("id asc").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("questions for category %d: %w", categoryID, err)
	}

	total, err := s.countQuestions(db)
	if err != nil {
		return nil, err
	}

	return &CategoryQuestions{Questions: questions, Total: total, CategoryID: category.ID}, nil
}

// NextQuizQuestion picks a random question from the category (or from all
// questions for AllCategories) that is not in previous. It returns nil when
// no such question is left.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*models.Question, error) {
	query := s.db.WithContext(ctx).Model(&models.Question{})
	if categoryID != AllCategories {
		query = query.Where("category = ?", categoryID)
	}

	var candidates []models.Question
	if err := query.Order("id asc").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("quiz pool for category %d: %w", categoryID, err)
	}

	// previous is filtered here rather than bound into NOT IN, which would hit
	// the driver's parameter limit for long quizzes.
	asked := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}
	pool := candidates[:0]
	for _, q := range candidates {
		if _, ok := asked[q.ID]; !ok {
			pool = append(pool, q)
		}
	}

	if len(pool) == 0 {
		return nil, nil
	}

	question := pool[s.pick(len(pool))]
	return &question, nil
}

func (s *TriviaService) countQuestions(db *gorm.DB) (int64, error) {
	var total int64
	if err := db.Model(&models.Question{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
