package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoCategories     = errors.New("no categories found")
	ErrNoQuestions      = errors.New("no questions found")
	ErrConstraint       = errors.New("constraint violation")
	ErrInvalidInput     = errors.New("invalid input")
)

// CategoryID identifies a category. It is rendered as a JSON string and
// accepted as either a number or a numeric string within int32 range.
type CategoryID int

// AllCategories selects questions from every category when playing a quiz.
const AllCategories CategoryID = 0

// MarshalJSON renders the id as a string, e.g. "2".
func (id CategoryID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(id)))
}

// UnmarshalJSON accepts 2 and "2".
func (id *CategoryID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: category id %q is not a number", ErrInvalidInput, s)
		}
		*id = CategoryID(n)
		return nil
	}

	var n int32
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: category id must be an integer", ErrInvalidInput)
	}
	*id = CategoryID(n)
	return nil
}

// Question represents a trivia question
type Question struct {
	ID         int        `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   CategoryID `json:"category"`
	Difficulty int        `json:"difficulty"`
}

// Category represents a question category
type Category struct {
	ID   CategoryID `json:"id"`
	Type string     `json:"type"`
}

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List retrieves one page of questions ordered by id
	List(ctx context.Context, page Page) ([]Question, error)

	// Count returns the total number of stored questions
	Count(ctx context.Context) (int, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a question and fills in its generated ID
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question
	Delete(ctx context.Context, id int) error

	// Search retrieves one page of questions whose text contains term, ignoring case
	Search(ctx context.Context, term string, page Page) ([]Question, error)

	// SearchCount returns the number of questions whose text contains term, ignoring case
	SearchCount(ctx context.Context, term string) (int, error)

	// ListByCategory retrieves one page of questions of a category
	ListByCategory(ctx context.Context, category CategoryID, page Page) ([]Question, error)

	// Candidates retrieves every question of a category, or all questions for AllCategories
	Candidates(ctx context.Context, category CategoryID) ([]Question, error)
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id CategoryID) (*Category, error)
}

// CategoryMap maps category ids to their labels
type CategoryMap map[CategoryID]string

// NewCategoryMap builds the id to label mapping used in responses.
func NewCategoryMap(categories []Category) CategoryMap {
	m := make(CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
