package domain

import "context"

// QuestionPage is one page of questions together with the number of
// questions in the whole store
type QuestionPage struct {
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

// QuestionEvent names a change broadcast to live clients
type QuestionEvent string

const (
	QuestionCreated QuestionEvent = "question_created"
	QuestionDeleted QuestionEvent = "question_deleted"
)

// QuestionNotifier receives question changes after they are committed
type QuestionNotifier interface {
	NotifyQuestion(event QuestionEvent, question Question)
}

// TriviaService defines the question and category operations
type TriviaService interface {
	// Categories returns every category keyed by id
	Categories(ctx context.Context) (CategoryMap, error)

	// ListQuestions returns a page of all questions and the category map
	ListQuestions(ctx context.Context, page Page) (*QuestionPage, CategoryMap, error)

	// DeleteQuestion removes a question and returns the refreshed page
	DeleteQuestion(ctx context.Context, id int, page Page) (*QuestionPage, error)

	// CreateQuestion stores a question and returns the refreshed page
	CreateQuestion(ctx context.Context, question *Question, page Page) (*QuestionPage, error)

	// SearchQuestions returns a page of questions matching term
	SearchQuestions(ctx context.Context, term string, page Page) (*QuestionPage, error)

	// QuestionsByCategory returns a page of a category's questions
	QuestionsByCategory(ctx context.Context, id CategoryID, page Page) (*QuestionPage, *Category, error)
}

// QuizService defines quiz play
type QuizService interface {
	// NextQuestion draws a random question of category that is not in
	// previous. It returns nil when every candidate has been seen.
	NextQuestion(ctx context.Context, category CategoryID, previous []int) (*Question, error)
}
