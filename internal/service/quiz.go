package service

import (
	"context"
	"math/rand"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// QuizService implements the domain.QuizService interface
type QuizService struct {
	questions domain.QuestionRepository
	intn      func(n int) int
}

// NewQuizService creates a new quiz service
func NewQuizService(questions domain.QuestionRepository) *QuizService {
	return &QuizService{
		questions: questions,
		intn:      rand.Intn,
	}
}

// NextQuestion draws a question of category, or of any category for
// domain.AllCategories, uniformly among those whose id is not in previous.
// It returns nil, nil once every candidate has been seen.
func (s *QuizService) NextQuestion(ctx context.Context, category domain.CategoryID, previous []int) (*domain.Question, error) {
	candidates, err := s.questions.Candidates(ctx, category)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	unseen := make([]domain.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}

	if len(unseen) == 0 {
		return nil, nil
	}

	question := unseen[s.intn(len(unseen))]
	return &question, nil
}
