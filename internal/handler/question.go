package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	trivia domain.TriviaService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(trivia domain.TriviaService) *QuestionHandler {
	return &QuestionHandler{
		trivia: trivia,
	}
}

// Register registers the question routes
func (h *QuestionHandler) Register(e *echo.Echo) {
	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.PostQuestion)
	e.DELETE("/questions/:id", h.DeleteQuestion)
}

// CreateQuestionRequest represents the request to create a new question.
// Fields must be present but may hold zero values.
type CreateQuestionRequest struct {
	Question   *string            `json:"question" validate:"required"`
	Answer     *string            `json:"answer" validate:"required"`
	Difficulty *int               `json:"difficulty" validate:"required"`
	Category   *domain.CategoryID `json:"category" validate:"required"`
}

// PostQuestionRequest carries the discriminant of a POST /questions body.
// A non-empty searchTerm makes it a search; otherwise the body is decoded
// as a CreateQuestionRequest.
type PostQuestionRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// IsSearch reports whether the request is a search
func (r *PostQuestionRequest) IsSearch() bool {
	return r.SearchTerm != ""
}

// QuestionListResponse is returned by GET /questions
type QuestionListResponse struct {
	Success bool `json:"success"`
	domain.QuestionPage
	Categories domain.CategoryMap `json:"categories"`
}

// QuestionPageResponse is returned by a search
type QuestionPageResponse struct {
	Success bool `json:"success"`
	domain.QuestionPage
}

// DeleteQuestionResponse is returned by DELETE /questions/:id
type DeleteQuestionResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
	domain.QuestionPage
}

// CreateQuestionResponse is returned when a question is created
type CreateQuestionResponse struct {
	Success         bool   `json:"success"`
	Created         int    `json:"created"`
	CreatedQuestion string `json:"created_question"`
	domain.QuestionPage
}

// ListQuestions returns a page of questions with the category map
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	page := domain.ParsePage(c.QueryParam("page"))

	result, categories, err := h.trivia.ListQuestions(c.Request().Context(), page)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestions) {
			return notFound(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, QuestionListResponse{
		Success:      true,
		QuestionPage: *result,
		Categories:   categories,
	})
}

// DeleteQuestion deletes a question and returns the refreshed page
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return notFound(err)
	}
	page := domain.ParsePage(c.QueryParam("page"))

	result, err := h.trivia.DeleteQuestion(c.Request().Context(), id, page)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return notFound(err)
		}
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, DeleteQuestionResponse{
		Success:      true,
		Deleted:      id,
		QuestionPage: *result,
	})
}

// PostQuestion searches questions or creates one depending on the body
func (h *QuestionHandler) PostQuestion(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(err)
	}

	var req PostQuestionRequest
	if err := bindBody(c, body, &req); err != nil {
		return err
	}
	if req.IsSearch() {
		return h.searchQuestions(c, req.SearchTerm)
	}

	var create CreateQuestionRequest
	if err := bindBody(c, body, &create); err != nil {
		return unprocessable(err)
	}
	return h.createQuestion(c, &create)
}

// bindBody binds a body that has already been read from the request
func bindBody(c echo.Context, body []byte, i any) error {
	c.Request().Body = io.NopCloser(bytes.NewReader(body))
	return c.Bind(i)
}

// parseID reads an id path segment. Ids are int4 in the store, so larger
// numbers cannot name an existing row.
func parseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (h *QuestionHandler) searchQuestions(c echo.Context, term string) error {
	page := domain.ParsePage(c.QueryParam("page"))

	result, err := h.trivia.SearchQuestions(c.Request().Context(), term, page)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestions) {
			return notFound(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, QuestionPageResponse{
		Success:      true,
		QuestionPage: *result,
	})
}

func (h *QuestionHandler) createQuestion(c echo.Context, req *CreateQuestionRequest) error {
	if err := c.Validate(req); err != nil {
		if missing := validation.MissingFields(err); len(missing) > 0 {
			c.Logger().Debugf("create question: missing %v", missing)
		}
		return unprocessable(err)
	}

	question := &domain.Question{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Difficulty: *req.Difficulty,
		Category:   *req.Category,
	}
	page := domain.ParsePage(c.QueryParam("page"))

	result, err := h.trivia.CreateQuestion(c.Request().Context(), question, page)
	if err != nil {
		return unprocessable(err)
	}

	return c.JSON(http.StatusOK, CreateQuestionResponse{
		Success:         true,
		Created:         question.ID,
		CreatedQuestion: question.Question,
		QuestionPage:    *result,
	})
}
