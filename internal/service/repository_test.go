package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// memQuestions is an in-memory domain.QuestionRepository
type memQuestions struct {
	mu        sync.Mutex
	questions []domain.Question
	nextID    int
	createErr error
	deleteErr error
}

func newMemQuestions(questions ...domain.Question) *memQuestions {
	m := &memQuestions{nextID: 1}
	for _, q := range questions {
		if q.ID >= m.nextID {
			m.nextID = q.ID + 1
		}
		m.questions = append(m.questions, q)
	}
	sort.Slice(m.questions, func(i, j int) bool { return m.questions[i].ID < m.questions[j].ID })
	return m
}

func pageOf(questions []domain.Question, page domain.Page) []domain.Question {
	out := []domain.Question{}
	if !page.Valid() {
		return out
	}
	for i := page.Offset(); i < len(questions) && i < page.Offset()+page.Limit(); i++ {
		out = append(out, questions[i])
	}
	return out
}

func (m *memQuestions) filter(keep func(domain.Question) bool) []domain.Question {
	var out []domain.Question
	for _, q := range m.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func (m *memQuestions) List(ctx context.Context, page domain.Page) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return pageOf(m.questions, page), nil
}

func (m *memQuestions) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.questions), nil
}

func (m *memQuestions) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.questions {
		if q.ID == id {
			question := q
			return &question, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

func (m *memQuestions) Create(ctx context.Context, question *domain.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	question.ID = m.nextID
	m.nextID++
	m.questions = append(m.questions, *question)
	return nil
}

func (m *memQuestions) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

func (m *memQuestions) matching(term string) []domain.Question {
	term = strings.ToLower(term)
	return m.filter(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	})
}

func (m *memQuestions) Search(ctx context.Context, term string, page domain.Page) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return pageOf(m.matching(term), page), nil
}

func (m *memQuestions) SearchCount(ctx context.Context, term string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matching(term)), nil
}

func (m *memQuestions) ListByCategory(ctx context.Context, category domain.CategoryID, page domain.Page) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return pageOf(m.filter(func(q domain.Question) bool { return q.Category == category }), page), nil
}

func (m *memQuestions) Candidates(ctx context.Context, category domain.CategoryID) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter(func(q domain.Question) bool {
		return category == domain.AllCategories || q.Category == category
	}), nil
}

// memCategories is an in-memory domain.CategoryRepository
type memCategories []domain.Category

func (m memCategories) List(ctx context.Context) ([]domain.Category, error) {
	return m, nil
}

func (m memCategories) GetByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	for _, c := range m {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

type recordedEvent struct {
	event    domain.QuestionEvent
	question domain.Question
}

type recordingNotifier struct {
	events []recordedEvent
}

func (r *recordingNotifier) NotifyQuestion(event domain.QuestionEvent, question domain.Question) {
	r.events = append(r.events, recordedEvent{event, question})
}

var errStoreDown = errors.New("connection refused")

var testCategories = memCategories{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
}

// seedQuestions returns n questions spread over categories 1..3
func seedQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:         i,
			Question:   "Question number " + string(rune('A'+i%26)),
			Answer:     "Answer",
			Category:   domain.CategoryID(i%3 + 1),
			Difficulty: i%5 + 1,
		})
	}
	return questions
}
