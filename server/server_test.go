package server_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anjiri1684/trivia_api/database"
	"github.com/anjiri1684/trivia_api/database/dbtest"
	"github.com/anjiri1684/trivia_api/models"
	"github.com/anjiri1684/trivia_api/server"
	"github.com/anjiri1684/trivia_api/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type TriviaAPITestSuite struct {
	suite.Suite
	db  *gorm.DB
	app *fiber.App
}

func TestTriviaAPITestSuite(t *testing.T) {
	suite.Run(t, new(TriviaAPITestSuite))
}

func (s *TriviaAPITestSuite) SetupTest() {
	log := zaptest.NewLogger(s.T())
	s.db = dbtest.New(s.T())
	s.Require().NoError(database.SeedCategories(s.db, log))
	s.app = server.New(services.NewTriviaService(s.db, log), log)
}

func (s *TriviaAPITestSuite) seed(n, category int) []models.Question {
	out := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{
			Question:   fmt.Sprintf("Question %d about category %d", i, category),
			Answer:     "answer",
			Category:   category,
			Difficulty: 1 + i%5,
		}
		s.Require().NoError(s.db.Create(&q).Error)
		out = append(out, q)
	}
	return out
}

func (s *TriviaAPITestSuite) total() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.Question{}).Count(&n).Error)
	return n
}

func (s *TriviaAPITestSuite) request(method, path, body string) (*http.Response, map[string]any) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var out map[string]any
	if len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func (s *TriviaAPITestSuite) assertError(resp *http.Response, body map[string]any, code int, message string) {
	s.Equal(code, resp.StatusCode)
	s.Equal(false, body["success"])
	s.Equal(message, body["message"])
	s.EqualValues(code, body["error"])
}

func (s *TriviaAPITestSuite) TestHealth() {
	resp, body := s.request(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])
}

func (s *TriviaAPITestSuite) TestGetCategories() {
	resp, body := s.request(http.MethodGet, "/categories", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])
	s.Equal(map[string]any{
		"1": "Science", "2": "Art", "3": "Geography",
		"4": "History", "5": "Entertainment", "6": "Sports",
	}, body["categories"])
}

func (s *TriviaAPITestSuite) TestGetQuestionsPaginates() {
	s.seed(7, 4)
	s.seed(6, 1)

	resp, body := s.request(http.MethodGet, "/questions", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Len(body["questions"], 10)
	s.EqualValues(13, body["total_questions"])
	s.Equal([]any{float64(1), float64(4)}, body["current_category"])
	s.Len(body["categories"], 6)

	resp, body = s.request(http.MethodGet, "/questions?page=2", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Len(body["questions"], 3)
	s.EqualValues(13, body["total_questions"])
	s.Equal([]any{float64(4)}, body["current_category"])

	resp, body = s.request(http.MethodGet, "/questions?page=1000", "")
	s.assertError(resp, body, http.StatusNotFound, "Not Found")
}

func (s *TriviaAPITestSuite) TestGetQuestionsNonNumericPageFallsBackToFirst() {
	s.seed(3, 2)

	resp, body := s.request(http.MethodGet, "/questions?page=abc", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(body["questions"], 3)
}

func (s *TriviaAPITestSuite) TestDeleteQuestion() {
	qs := s.seed(3, 1)

	resp, body := s.request(http.MethodDelete, fmt.Sprintf("/questions/%d", qs[1].ID), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])
	s.EqualValues(qs[1].ID, body["question"])
	s.EqualValues(2, s.total())

	_, body = s.request(http.MethodGet, "/questions", "")
	for _, q := range body["questions"].([]any) {
		s.NotEqualValues(qs[1].ID, q.(map[string]any)["id"])
	}
	s.EqualValues(2, body["total_questions"])
}

func (s *TriviaAPITestSuite) TestDeleteQuestionErrors() {
	s.seed(2, 1)

	resp, body := s.request(http.MethodDelete, "/questions/9999", "")
	s.assertError(resp, body, http.StatusNotFound, "Not Found")

	resp, body = s.request(http.MethodDelete, "/questions/abc", "")
	s.assertError(resp, body, http.StatusBadRequest, "Bad Request")

	resp, body = s.request(http.MethodDelete, "/questions/-1", "")
	s.assertError(resp, body, http.StatusBadRequest, "Bad Request")

	s.EqualValues(2, s.total())
}

func (s *TriviaAPITestSuite) TestAddQuestion() {
	resp, body := s.request(http.MethodPost, "/questions",
		`{"question":"Who painted the Mona Lisa?","answer":"Leonardo da Vinci","category":2,"difficulty":2}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])

	q := body["question"].(map[string]any)
	s.NotZero(q["id"])
	s.Equal("Who painted the Mona Lisa?", q["question"])
	s.EqualValues(2, q["category"])
	s.EqualValues(1, s.total())
}

func (s *TriviaAPITestSuite) TestAddQuestionInvalid() {
	s.seed(1, 1)

	cases := map[string]string{
		"missing answer":  `{"question":"Q","category":1,"difficulty":1}`,
		"empty question":  `{"question":"","answer":"A","category":1,"difficulty":1}`,
		"string category": `{"question":"Q","answer":"A","category":"1","difficulty":1}`,
		"empty object":    `{}`,
		"malformed json":  `{"question":`,
		"array body":      `[1,2]`,
		"null difficulty": `{"question":"Q","answer":"A","category":1,"difficulty":null}`,
	}
	for name, payload := range cases {
		s.Run(name, func() {
			resp, body := s.request(http.MethodPost, "/questions", payload)
			s.assertError(resp, body, http.StatusBadRequest, "Bad Request")
		})
	}
	s.EqualValues(1, s.total())
}

func (s *TriviaAPITestSuite) TestAddQuestionListsEveryProblem() {
	resp, body := s.request(http.MethodPost, "/questions", `{"category":"x"}`)
	s.assertError(resp, body, http.StatusBadRequest, "Bad Request")
	s.ElementsMatch([]any{
		"question is required",
		"answer is required",
		"category must be an integer",
		"difficulty is required",
	}, body["problems"])
}

func (s *TriviaAPITestSuite) TestSearchQuestions() {
	s.seed(3, 1)
	q := models.Question{Question: "What is the TITLE of Anne Rice's first book?", Answer: "Interview with the Vampire", Category: 4, Difficulty: 3}
	s.Require().NoError(s.db.Create(&q).Error)

	resp, body := s.request(http.MethodPost, "/questions", `{"searchTerm":"title"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Len(body["questions"], 1)
	s.EqualValues(4, body["total_questions"])
	s.Equal([]any{float64(4)}, body["current_category"])

	_, body = s.request(http.MethodPost, "/questions", `{"searchTerm":"QUESTION"}`)
	s.Len(body["questions"], 3)
	s.EqualValues(4, body["total_questions"])

	_, body = s.request(http.MethodPost, "/questions", `{"searchTerm":"nothing matches this"}`)
	s.Empty(body["questions"])
	s.Equal([]any{}, body["current_category"])
	s.EqualValues(4, body["total_questions"])

	resp, body = s.request(http.MethodPost, "/questions", `{"searchTerm":null}`)
	s.assertError(resp, body, http.StatusBadRequest, "Bad Request")
	s.EqualValues(4, s.total())
}

func (s *TriviaAPITestSuite) TestQuestionsByCategory() {
	s.seed(2, 3)
	s.seed(4, 1)

	resp, body := s.request(http.MethodGet, "/categories/3/questions", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Len(body["questions"], 2)
	s.EqualValues(6, body["total_questions"])
	s.EqualValues(3, body["current_category"])

	resp, body = s.request(http.MethodGet, "/categories/5/questions", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal([]any{}, body["questions"])

	resp, body = s.request(http.MethodGet, "/categories/99/questions", "")
	s.assertError(resp, body, http.StatusNotFound, "Not Found")

	resp, body = s.request(http.MethodGet, "/categories/science/questions", "")
	s.assertError(resp, body, http.StatusBadRequest, "Bad Request")
}

func (s *TriviaAPITestSuite) TestQuizPicksFromCategory() {
	science := s.seed(3, 1)
	s.seed(3, 2)

	ids := map[float64]bool{}
	for _, q := range science {
		ids[float64(q.ID)] = true
	}

	for i := 0; i < 10; i++ {
		resp, body := s.request(http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"type":"Science","id":1}}`)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		q := body["question"].(map[string]any)
		s.EqualValues(1, q["category"])
		s.True(ids[q["id"].(float64)])
	}
}

func (s *TriviaAPITestSuite) TestQuizExhaustsCategory() {
	qs := s.seed(2, 1)
	s.seed(1, 2)

	payload := fmt.Sprintf(`{"previous_questions":[%d,%d],"quiz_category":{"type":"Science","id":"1"}}`, qs[0].ID, qs[1].ID)
	resp, body := s.request(http.MethodPost, "/quizzes", payload)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])
	s.Contains(body, "question")
	s.Nil(body["question"])
}

func (s *TriviaAPITestSuite) TestQuizAllCategories() {
	a := s.seed(1, 1)
	b := s.seed(1, 5)

	payload := fmt.Sprintf(`{"previous_questions":[%d],"quiz_category":{"type":"click","id":0}}`, a[0].ID)
	resp, body := s.request(http.MethodPost, "/quizzes", payload)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.EqualValues(b[0].ID, body["question"].(map[string]any)["id"])
}

func (s *TriviaAPITestSuite) TestQuizUnknownCategoryIsEmpty() {
	s.seed(2, 1)

	resp, body := s.request(http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"id":77}}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Nil(body["question"])
}

func (s *TriviaAPITestSuite) TestQuizMalformed() {
	for _, payload := range []string{
		`{}`,
		`{"previous_questions":[]}`,
		`{"quiz_category":{"id":1}}`,
		`{"previous_questions":"1,2","quiz_category":{"id":1}}`,
		`{"previous_questions":[],"quiz_category":{"id":"sports"}}`,
	} {
		resp, body := s.request(http.MethodPost, "/quizzes", payload)
		s.assertError(resp, body, http.StatusBadRequest, "Bad Request")
	}
}

func (s *TriviaAPITestSuite) TestUnknownRouteAndMethod() {
	resp, body := s.request(http.MethodGet, "/nope", "")
	s.assertError(resp, body, http.StatusNotFound, "Not Found")

	resp, body = s.request(http.MethodPut, "/questions", `{}`)
	s.assertError(resp, body, http.StatusMethodNotAllowed, "Method Not Allowed")

	resp, body = s.request(http.MethodDelete, "/categories", "")
	s.assertError(resp, body, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func (s *TriviaAPITestSuite) TestCORS() {
	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodDelete)

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Equal("*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	s.Equal("GET,POST,DELETE,OPTIONS", resp.Header.Get(fiber.HeaderAccessControlAllowMethods))
	s.Equal("Content-Type,Authorization", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders))
}

func (s *TriviaAPITestSuite) TestCORSHeadersOnSimpleResponses() {
	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/categories"},
		{http.MethodDelete, "/questions/abc"},
	} {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")

		resp, err := s.app.Test(req, -1)
		s.Require().NoError(err)
		resp.Body.Close()

		s.Equal("*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin), tt.path)
		s.Equal("GET,POST,DELETE,OPTIONS", resp.Header.Get(fiber.HeaderAccessControlAllowMethods), tt.path)
		s.Equal("Content-Type,Authorization", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders), tt.path)
	}
}

func (s *TriviaAPITestSuite) TestRequestIDHeader() {
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.NotEmpty(resp.Header.Get(fiber.HeaderXRequestID))
}
