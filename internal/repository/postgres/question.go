package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionRepository implements the domain.QuestionRepository interface
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		pool: pool,
	}
}

// List retrieves one page of questions ordered by id
func (r *QuestionRepository) List(ctx context.Context, page domain.Page) ([]domain.Question, error) {
	if !page.Valid() {
		return []domain.Question{}, nil
	}
	query := `
		SELECT ` + questionColumns + `
		FROM questions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	return r.query(ctx, "list questions", query, page.Limit(), page.Offset())
}

// Count returns the total number of stored questions
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID,
		&question.Question,
		&question.Answer,
		&question.Category,
		&question.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Create inserts a question and fills in its generated ID
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		question.Question,
		question.Answer,
		int(question.Category),
		question.Difficulty,
	).Scan(&question.ID)
	if err != nil {
		return wrapWriteError("create question", err)
	}
	return nil
}

// Delete deletes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return wrapWriteError("delete question", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

// Search retrieves one page of questions whose text contains term, ignoring case
func (r *QuestionRepository) Search(ctx context.Context, term string, page domain.Page) ([]domain.Question, error) {
	if !page.Valid() {
		return []domain.Question{}, nil
	}
	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE question ILIKE $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	return r.query(ctx, "search questions", query, "%"+escapeLike(term)+"%", page.Limit(), page.Offset())
}

// SearchCount returns the number of questions whose text contains term, ignoring case
func (r *QuestionRepository) SearchCount(ctx context.Context, term string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE question ILIKE $1`, "%"+escapeLike(term)+"%").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matching questions: %w", err)
	}
	return count, nil
}

// ListByCategory retrieves one page of questions of a category
func (r *QuestionRepository) ListByCategory(ctx context.Context, category domain.CategoryID, page domain.Page) ([]domain.Question, error) {
	if !page.Valid() {
		return []domain.Question{}, nil
	}
	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE category = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	return r.query(ctx, "list questions by category", query, int(category), page.Limit(), page.Offset())
}

// Candidates retrieves every question of a category, or all questions for domain.AllCategories
func (r *QuestionRepository) Candidates(ctx context.Context, category domain.CategoryID) ([]domain.Question, error) {
	if category == domain.AllCategories {
		return r.query(ctx, "get quiz candidates", `SELECT `+questionColumns+` FROM questions ORDER BY id`)
	}
	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE category = $1
		ORDER BY id
	`
	return r.query(ctx, "get quiz candidates", query, int(category))
}

func (r *QuestionRepository) query(ctx context.Context, op, query string, args ...any) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
