package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuizHandler handles quiz play
type QuizHandler struct {
	quiz domain.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quiz domain.QuizService) *QuizHandler {
	return &QuizHandler{
		quiz: quiz,
	}
}

// Register registers the quiz routes
func (h *QuizHandler) Register(e *echo.Echo) {
	e.POST("/quizzes", h.PlayQuiz)
}

// QuizCategory selects the questions of a quiz. ID 0 means all categories.
type QuizCategory struct {
	ID   *domain.CategoryID `json:"id" validate:"required"`
	Type string             `json:"type"`
}

// PlayQuizRequest represents the request for the next quiz question
type PlayQuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions" validate:"required"`
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
}

// PlayQuizResponse carries the next question, or none when the quiz is over
type PlayQuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question,omitempty"`
}

// PlayQuiz returns a random question the player has not seen yet
func (h *QuizHandler) PlayQuiz(c echo.Context) error {
	var req PlayQuizRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	question, err := h.quiz.NextQuestion(c.Request().Context(), *req.QuizCategory.ID, req.PreviousQuestions)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PlayQuizResponse{
		Success:  true,
		Question: question,
	})
}
