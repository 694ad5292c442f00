package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	trivia domain.TriviaService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(trivia domain.TriviaService) *CategoryHandler {
	return &CategoryHandler{
		trivia: trivia,
	}
}

// Register registers the category routes
func (h *CategoryHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.GetCategories)
	e.GET("/categories/:id/questions", h.GetCategoryQuestions)
}

// CategoriesResponse is returned by GET /categories
type CategoriesResponse struct {
	Success    bool               `json:"success"`
	Categories domain.CategoryMap `json:"categories"`
}

// CategoryQuestionsResponse is returned by GET /categories/:id/questions
type CategoryQuestionsResponse struct {
	Success bool `json:"success"`
	domain.QuestionPage
	CurrentCategory string `json:"current_category"`
}

// GetCategories returns every category keyed by id
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.trivia.Categories(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoCategories) {
			return notFound(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: categories,
	})
}

// GetCategoryQuestions returns a page of a category's questions. An unknown
// category is a bad request rather than a missing resource.
func (h *CategoryHandler) GetCategoryQuestions(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return badRequest(domain.ErrCategoryNotFound)
		}
		return notFound(err)
	}
	page := domain.ParsePage(c.QueryParam("page"))

	result, category, err := h.trivia.QuestionsByCategory(c.Request().Context(), domain.CategoryID(id), page)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return badRequest(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		QuestionPage:    *result,
		CurrentCategory: category.Type,
	})
}
