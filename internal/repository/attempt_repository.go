package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex-backend/internal/model"
)

// AttemptRepository handles attempt and answer data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, exam_id, student_id, started_at, submitted_at, score, feedback, graded_at, graded_by`

func scanAttempt(row pgx.Row) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := row.Scan(&a.ID, &a.ExamID, &a.StudentID, &a.StartedAt, &a.SubmittedAt,
		&a.Score, &a.Feedback, &a.GradedAt, &a.GradedBy)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an attempt row for the (exam, student) pair. Concurrent
// starts race on the unique constraint; only the winner gets a row back,
// losers read the winner's row afterwards.
func (r *AttemptRepository) Create(ctx context.Context, examID, studentID uuid.UUID) (*model.Attempt, bool, error) {
	a := &model.Attempt{ExamID: examID, StudentID: studentID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attempts (exam_id, student_id)
		 VALUES ($1, $2)
		 ON CONFLICT (exam_id, student_id) DO NOTHING
		 RETURNING id, started_at`,
		examID, studentID,
	).Scan(&a.ID, &a.StartedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			existing, gerr := r.GetByExamAndStudent(ctx, examID, studentID)
			if gerr != nil {
				return nil, false, gerr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return a, true, nil
}

// GetByID retrieves an attempt by id.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts WHERE id = $1`, id))
}

// GetByExamAndStudent retrieves the student's attempt for an exam.
func (r *AttemptRepository) GetByExamAndStudent(ctx context.Context, examID, studentID uuid.UUID) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts WHERE exam_id = $1 AND student_id = $2`,
		examID, studentID))
}

// UpsertAnswer writes or replaces the answer for one question of an attempt.
// Replacing an answer discards any previous grade on it.
func (r *AttemptRepository) UpsertAnswer(ctx context.Context, ans *model.Answer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO answers (attempt_id, question_id, choice_id, answer_text)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (attempt_id, question_id) DO UPDATE
		 SET choice_id = EXCLUDED.choice_id,
		     answer_text = EXCLUDED.answer_text,
		     score = NULL,
		     graded = FALSE,
		     feedback = '',
		     graded_at = NULL,
		     graded_by = NULL,
		     updated_at = NOW()
		 RETURNING id`,
		ans.AttemptID, ans.QuestionID, ans.ChoiceID, ans.AnswerText,
	).Scan(&ans.ID)
}

// Submit closes the attempt and auto-grades its multiple-choice answers in one
// transaction. The submitted_at guard makes the close first-writer-wins;
// returns false when the attempt was already submitted.
func (r *AttemptRepository) Submit(ctx context.Context, attemptID uuid.UUID, now time.Time) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE attempts SET submitted_at = $1
		 WHERE id = $2 AND submitted_at IS NULL`, now, attemptID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	// Score each MCQ answer: full weight when the picked choice is correct,
	// zero otherwise. Written answers stay ungraded.
	_, err = tx.Exec(ctx,
		`UPDATE answers a
		 SET score = CASE WHEN c.is_correct THEN eq.weight ELSE 0 END,
		     graded = TRUE,
		     graded_at = $2,
		     updated_at = $2
		 FROM choices c, exam_questions eq, attempts att
		 WHERE a.attempt_id = $1
		   AND a.choice_id = c.id
		   AND att.id = a.attempt_id
		   AND eq.exam_id = att.exam_id
		   AND eq.question_id = a.question_id`, attemptID, now)
	if err != nil {
		return false, err
	}

	if err := recomputeScore(ctx, tx, attemptID); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

// ListExpired retrieves open attempts whose exam window closed before the
// instant, together with each window's end time.
func (r *AttemptRepository) ListExpired(ctx context.Context, now time.Time) ([]model.ExpiredAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.exam_id, a.student_id,
		        e.exam_date + make_interval(mins => e.duration_minutes) AS window_end
		 FROM attempts a
		 JOIN exams e ON e.id = a.exam_id
		 WHERE a.submitted_at IS NULL
		   AND e.exam_date + make_interval(mins => e.duration_minutes) < $1
		 ORDER BY window_end`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []model.ExpiredAttempt
	for rows.Next() {
		var ea model.ExpiredAttempt
		if err := rows.Scan(&ea.AttemptID, &ea.ExamID, &ea.StudentID, &ea.WindowEnd); err != nil {
			return nil, err
		}
		expired = append(expired, ea)
	}
	return expired, rows.Err()
}

// GradeAnswer stores a manual score on one answer and refreshes the attempt's
// aggregate score, atomically.
func (r *AttemptRepository) GradeAnswer(ctx context.Context, answerID, doctorID uuid.UUID, score float64, feedback string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var attemptID uuid.UUID
	err = tx.QueryRow(ctx,
		`UPDATE answers
		 SET score = $1, graded = TRUE, feedback = $2, graded_at = NOW(), graded_by = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING attempt_id`,
		score, feedback, doctorID, answerID,
	).Scan(&attemptID)
	if err != nil {
		return err
	}

	if err := recomputeScore(ctx, tx, attemptID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// recomputeScore rewrites the attempt's provisional score as the percentage
// earned across its graded answers, weighted by each question's weight.
// Yields NULL when nothing is graded yet.
func recomputeScore(ctx context.Context, tx pgx.Tx, attemptID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE attempts att
		 SET score = sub.pct
		 FROM (
		     SELECT CASE WHEN SUM(eq.weight) FILTER (WHERE a.graded) > 0
		                 THEN 100.0 * SUM(a.score) FILTER (WHERE a.graded)
		                      / SUM(eq.weight) FILTER (WHERE a.graded)
		            END AS pct
		     FROM answers a
		     JOIN attempts t ON t.id = a.attempt_id
		     JOIN exam_questions eq ON eq.exam_id = t.exam_id AND eq.question_id = a.question_id
		     WHERE a.attempt_id = $1
		 ) sub
		 WHERE att.id = $1 AND att.graded_at IS NULL`, attemptID)
	return err
}

// FinalizeGrade stamps an instructor's final score and feedback on a
// submitted attempt. Returns false when the attempt is not submitted yet.
func (r *AttemptRepository) FinalizeGrade(ctx context.Context, attemptID, doctorID uuid.UUID, score float64, feedback string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE attempts
		 SET score = $1, feedback = $2, graded_at = NOW(), graded_by = $3
		 WHERE id = $4 AND submitted_at IS NOT NULL`,
		score, feedback, doctorID, attemptID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetAnswer retrieves one answer by id.
func (r *AttemptRepository) GetAnswer(ctx context.Context, id uuid.UUID) (*model.Answer, error) {
	a := &model.Answer{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, attempt_id, question_id, choice_id, answer_text, score, graded, feedback, graded_at, graded_by
		 FROM answers WHERE id = $1`, id,
	).Scan(&a.ID, &a.AttemptID, &a.QuestionID, &a.ChoiceID, &a.AnswerText,
		&a.Score, &a.Graded, &a.Feedback, &a.GradedAt, &a.GradedBy)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnswers retrieves the answers of an attempt.
func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, attempt_id, question_id, choice_id, answer_text, score, graded, feedback, graded_at, graded_by
		 FROM answers WHERE attempt_id = $1 ORDER BY id`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &a.ChoiceID, &a.AnswerText,
			&a.Score, &a.Graded, &a.Feedback, &a.GradedAt, &a.GradedBy); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// ListBreakdown retrieves an attempt's answers joined with their questions and
// exam weights, for result review.
func (r *AttemptRepository) ListBreakdown(ctx context.Context, attemptID uuid.UUID) ([]model.AnswerBreakdown, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.text, q.type, eq.weight, a.choice_id, a.answer_text, a.score, a.graded, a.feedback
		 FROM answers a
		 JOIN attempts att ON att.id = a.attempt_id
		 JOIN questions q ON q.id = a.question_id
		 JOIN exam_questions eq ON eq.exam_id = att.exam_id AND eq.question_id = a.question_id
		 WHERE a.attempt_id = $1
		 ORDER BY eq.id`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AnswerBreakdown
	for rows.Next() {
		var b model.AnswerBreakdown
		if err := rows.Scan(&b.QuestionID, &b.QuestionText, &b.QuestionType, &b.Weight,
			&b.ChoiceID, &b.AnswerText, &b.Score, &b.Graded, &b.Feedback); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListResultsForStudent retrieves a student's submitted attempts with the
// exam and course they belong to.
func (r *AttemptRepository) ListResultsForStudent(ctx context.Context, studentID uuid.UUID) ([]model.AttemptResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT att.id, att.exam_id, att.student_id, att.started_at, att.submitted_at,
		        att.score, att.feedback, att.graded_at, att.graded_by,
		        e.name, c.name, c.code
		 FROM attempts att
		 JOIN exams e ON e.id = att.exam_id
		 JOIN courses c ON c.id = e.course_id
		 WHERE att.student_id = $1 AND att.submitted_at IS NOT NULL
		 ORDER BY att.submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.AttemptResult
	for rows.Next() {
		var res model.AttemptResult
		if err := rows.Scan(&res.ID, &res.ExamID, &res.StudentID, &res.StartedAt, &res.SubmittedAt,
			&res.Score, &res.Feedback, &res.GradedAt, &res.GradedBy,
			&res.ExamName, &res.CourseName, &res.CourseCode); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ListResultsForExam retrieves every attempt of an exam with the student's
// name and the count of answers still awaiting a manual grade.
func (r *AttemptRepository) ListResultsForExam(ctx context.Context, examID uuid.UUID) ([]model.ExamResultRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT att.id, att.student_id, u.name, att.score, att.submitted_at,
		        att.graded_at IS NOT NULL,
		        COUNT(a.id) FILTER (WHERE NOT a.graded)
		 FROM attempts att
		 JOIN users u ON u.id = att.student_id
		 LEFT JOIN answers a ON a.attempt_id = att.id
		 WHERE att.exam_id = $1
		 GROUP BY att.id, u.name
		 ORDER BY u.name`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ExamResultRow
	for rows.Next() {
		var res model.ExamResultRow
		if err := rows.Scan(&res.AttemptID, &res.StudentID, &res.StudentName,
			&res.Score, &res.SubmittedAt, &res.Graded, &res.UngradedCount); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
