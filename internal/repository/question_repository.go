package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex-backend/internal/model"
)

// QuestionRepository handles question and choice data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, text, type, chapter, difficulty, rubric, created_by, created_at, updated_at`

// GetByID retrieves a question by id.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Text, &q.Type, &q.Chapter, &q.Difficulty, &q.Rubric, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetOwned retrieves a question only when it belongs to the given doctor.
// Absence and lack of ownership are indistinguishable to the caller.
func (r *QuestionRepository) GetOwned(ctx context.Context, id, doctorID uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1 AND created_by = $2`, id, doctorID,
	).Scan(&q.ID, &q.Text, &q.Type, &q.Chapter, &q.Difficulty, &q.Rubric, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListByAuthor retrieves all questions created by a doctor.
func (r *QuestionRepository) ListByAuthor(ctx context.Context, doctorID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE created_by = $1 ORDER BY created_at DESC`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &q.Chapter, &q.Difficulty, &q.Rubric, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (text, type, chapter, difficulty, rubric, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		q.Text, q.Type, q.Chapter, q.Difficulty, q.Rubric, q.CreatedBy,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update applies question edits. The type is immutable.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions SET text = $1, chapter = $2, difficulty = $3, rubric = $4, updated_at = NOW()
		 WHERE id = $5`,
		q.Text, q.Chapter, q.Difficulty, q.Rubric, q.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a question; its choices cascade.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// InUse reports whether any exam references the question.
func (r *QuestionRepository) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM exam_questions WHERE question_id = $1)`, id).Scan(&exists)
	return exists, err
}

// ─── Choices ───────────────────────────────────────────────────────────────

// GetChoice retrieves a single choice.
func (r *QuestionRepository) GetChoice(ctx context.Context, id uuid.UUID) (*model.Choice, error) {
	c := &model.Choice{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_id, text, is_correct FROM choices WHERE id = $1`, id,
	).Scan(&c.ID, &c.QuestionID, &c.Text, &c.IsCorrect)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListChoices retrieves all choices of a question.
func (r *QuestionRepository) ListChoices(ctx context.Context, questionID uuid.UUID) ([]model.Choice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, text, is_correct FROM choices WHERE question_id = $1 ORDER BY id`,
		questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []model.Choice
	for rows.Next() {
		var c model.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.IsCorrect); err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// CreateChoice inserts a choice. When it is marked correct, every sibling's
// is_correct flag is cleared first in the same transaction, keeping the
// single-correct-choice invariant.
func (r *QuestionRepository) CreateChoice(ctx context.Context, c *model.Choice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if c.IsCorrect {
		if _, err := tx.Exec(ctx,
			`UPDATE choices SET is_correct = FALSE WHERE question_id = $1`, c.QuestionID); err != nil {
			return fmt.Errorf("clear siblings: %w", err)
		}
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO choices (question_id, text, is_correct) VALUES ($1, $2, $3) RETURNING id`,
		c.QuestionID, c.Text, c.IsCorrect,
	).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert choice: %w", err)
	}

	return tx.Commit(ctx)
}

// UpdateChoice applies choice edits with the same sibling-clearing rule as
// CreateChoice.
func (r *QuestionRepository) UpdateChoice(ctx context.Context, c *model.Choice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if c.IsCorrect {
		if _, err := tx.Exec(ctx,
			`UPDATE choices SET is_correct = FALSE WHERE question_id = $1 AND id <> $2`,
			c.QuestionID, c.ID); err != nil {
			return fmt.Errorf("clear siblings: %w", err)
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE choices SET text = $1, is_correct = $2 WHERE id = $3`,
		c.Text, c.IsCorrect, c.ID)
	if err != nil {
		return fmt.Errorf("update choice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

// DeleteChoice removes a choice.
func (r *QuestionRepository) DeleteChoice(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM choices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ChoiceCounts returns the total and correct choice counts for a question.
func (r *QuestionRepository) ChoiceCounts(ctx context.Context, questionID uuid.UUID) (total, correct int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct) FROM choices WHERE question_id = $1`,
		questionID).Scan(&total, &correct)
	return total, correct, err
}
