package service

import (
	"context"
	"fmt"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// TriviaService implements the domain.TriviaService interface
type TriviaService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	notifier   domain.QuestionNotifier
}

// NewTriviaService creates a new trivia service. notifier may be nil.
func NewTriviaService(questions domain.QuestionRepository, categories domain.CategoryRepository, notifier domain.QuestionNotifier) *TriviaService {
	return &TriviaService{
		questions:  questions,
		categories: categories,
		notifier:   notifier,
	}
}

// Categories returns every category keyed by id
func (s *TriviaService) Categories(ctx context.Context) (domain.CategoryMap, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, domain.ErrNoCategories
	}
	return domain.NewCategoryMap(categories), nil
}

// ListQuestions returns a page of all questions and the category map. An
// empty page, whether the store is empty or the page is out of range,
// yields domain.ErrNoQuestions.
func (s *TriviaService) ListQuestions(ctx context.Context, page domain.Page) (*domain.QuestionPage, domain.CategoryMap, error) {
	questions, err := s.questions.List(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, domain.ErrNoQuestions
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	return &domain.QuestionPage{
		Questions:      questions,
		TotalQuestions: total,
	}, domain.NewCategoryMap(categories), nil
}

// DeleteQuestion removes a question and returns the refreshed page
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int, page domain.Page) (*domain.QuestionPage, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.notify(domain.QuestionDeleted, *question)

	result, err := s.page(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("question %d deleted: %w", id, err)
	}
	return result, nil
}

// CreateQuestion stores a question and returns the refreshed page
func (s *TriviaService) CreateQuestion(ctx context.Context, question *domain.Question, page domain.Page) (*domain.QuestionPage, error) {
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	s.notify(domain.QuestionCreated, *question)

	result, err := s.page(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("question %d created: %w", question.ID, err)
	}
	return result, nil
}

// SearchQuestions returns a page of questions whose text contains term,
// ignoring case. No match at all yields domain.ErrNoQuestions.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page domain.Page) (*domain.QuestionPage, error) {
	matches, err := s.questions.SearchCount(ctx, term)
	if err != nil {
		return nil, err
	}
	if matches == 0 {
		return nil, domain.ErrNoQuestions
	}

	questions, err := s.questions.Search(ctx, term, page)
	if err != nil {
		return nil, err
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.QuestionPage{
		Questions:      questions,
		TotalQuestions: total,
	}, nil
}

// QuestionsByCategory returns a page of a category's questions
func (s *TriviaService) QuestionsByCategory(ctx context.Context, id domain.CategoryID, page domain.Page) (*domain.QuestionPage, *domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.questions.ListByCategory(ctx, category.ID, page)
	if err != nil {
		return nil, nil, err
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, nil, err
	}

	return &domain.QuestionPage{
		Questions:      questions,
		TotalQuestions: total,
	}, category, nil
}

func (s *TriviaService) page(ctx context.Context, page domain.Page) (*domain.QuestionPage, error) {
	questions, err := s.questions.List(ctx, page)
	if err != nil {
		return nil, err
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.QuestionPage{
		Questions:      questions,
		TotalQuestions: total,
	}, nil
}

func (s *TriviaService) notify(event domain.QuestionEvent, question domain.Question) {
	if s.notifier != nil {
		s.notifier.NotifyQuestion(event, question)
	}
}
