package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex-backend/internal/model"
)

// ExamRepository handles exam and exam-question data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, course_id, name, exam_date, duration_minutes, instructions, status, created_by, created_at, updated_at`

func scanExam(row pgx.Row) (*model.Exam, error) {
	e := &model.Exam{}
	err := row.Scan(&e.ID, &e.CourseID, &e.Name, &e.ExamDate, &e.DurationMinutes,
		&e.Instructions, &e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID retrieves an exam by id.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id))
}

// GetOwned retrieves an exam only when the given doctor created it.
func (r *ExamRepository) GetOwned(ctx context.Context, id, doctorID uuid.UUID) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1 AND created_by = $2`, id, doctorID))
}

// ListByAuthor retrieves all exams created by a doctor, with their course.
func (r *ExamRepository) ListByAuthor(ctx context.Context, doctorID uuid.UUID) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.course_id, e.name, e.exam_date, e.duration_minutes, e.instructions,
		        e.status, e.created_by, e.created_at, e.updated_at,
		        c.id, c.name, c.code, c.description, c.created_at, c.updated_at
		 FROM exams e JOIN courses c ON e.course_id = c.id
		 WHERE e.created_by = $1
		 ORDER BY e.exam_date DESC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExamsWithCourse(rows)
}

// ListForStudent retrieves exams of the student's enrolled courses filtered by
// status, either upcoming (window opens after now) or already open.
func (r *ExamRepository) ListForStudent(ctx context.Context, studentID uuid.UUID, now time.Time, upcoming bool) ([]model.Exam, error) {
	cmp := `e.exam_date <= $2`
	if upcoming {
		cmp = `e.exam_date > $2`
	}
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.course_id, e.name, e.exam_date, e.duration_minutes, e.instructions,
		        e.status, e.created_by, e.created_at, e.updated_at,
		        c.id, c.name, c.code, c.description, c.created_at, c.updated_at
		 FROM exams e
		 JOIN courses c ON e.course_id = c.id
		 JOIN student_courses sc ON sc.course_id = e.course_id
		 WHERE sc.student_id = $1 AND e.status = 'published' AND `+cmp+`
		 ORDER BY e.exam_date`, studentID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExamsWithCourse(rows)
}

func collectExamsWithCourse(rows pgx.Rows) ([]model.Exam, error) {
	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		var c model.Course
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Name, &e.ExamDate, &e.DurationMinutes,
			&e.Instructions, &e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
			&c.ID, &c.Name, &c.Code, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		e.Course = &c
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (course_id, name, exam_date, duration_minutes, instructions, status, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		e.CourseID, e.Name, e.ExamDate, e.DurationMinutes, e.Instructions, e.Status, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update applies exam edits.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exams
		 SET name = $1, exam_date = $2, duration_minutes = $3, instructions = $4, status = $5, updated_at = NOW()
		 WHERE id = $6`,
		e.Name, e.ExamDate, e.DurationMinutes, e.Instructions, e.Status, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an exam; its question associations cascade.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// HasAttempts reports whether any attempt row exists for the exam.
func (r *ExamRepository) HasAttempts(ctx context.Context, examID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attempts WHERE exam_id = $1)`, examID).Scan(&exists)
	return exists, err
}

// GetExamQuestion retrieves an exam-question association row.
func (r *ExamRepository) GetExamQuestion(ctx context.Context, id uuid.UUID) (*model.ExamQuestion, error) {
	eq := &model.ExamQuestion{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, question_id, weight FROM exam_questions WHERE id = $1`, id,
	).Scan(&eq.ID, &eq.ExamID, &eq.QuestionID, &eq.Weight)
	if err != nil {
		return nil, err
	}
	return eq, nil
}

// ListQuestions retrieves the questions attached to an exam with weights.
func (r *ExamRepository) ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.ExamQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT eq.id, eq.exam_id, eq.question_id, eq.weight,
		        q.id, q.text, q.type, q.chapter, q.difficulty, q.rubric, q.created_by, q.created_at, q.updated_at
		 FROM exam_questions eq JOIN questions q ON eq.question_id = q.id
		 WHERE eq.exam_id = $1
		 ORDER BY eq.id`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eqs []model.ExamQuestion
	for rows.Next() {
		var eq model.ExamQuestion
		var q model.Question
		if err := rows.Scan(&eq.ID, &eq.ExamID, &eq.QuestionID, &eq.Weight,
			&q.ID, &q.Text, &q.Type, &q.Chapter, &q.Difficulty, &q.Rubric, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		eq.Question = &q
		eqs = append(eqs, eq)
	}
	return eqs, rows.Err()
}

// AttachQuestion links a question to an exam with a weight. Returns false
// when the pair already exists.
func (r *ExamRepository) AttachQuestion(ctx context.Context, eq *model.ExamQuestion) (bool, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exam_questions (exam_id, question_id, weight)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (exam_id, question_id) DO NOTHING
		 RETURNING id`,
		eq.ExamID, eq.QuestionID, eq.Weight,
	).Scan(&eq.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DetachQuestion removes an exam-question association.
func (r *ExamRepository) DetachQuestion(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exam_questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// QuestionWeight retrieves the weight of a question within an exam.
func (r *ExamRepository) QuestionWeight(ctx context.Context, examID, questionID uuid.UUID) (float64, error) {
	var weight float64
	err := r.pool.QueryRow(ctx,
		`SELECT weight FROM exam_questions WHERE exam_id = $1 AND question_id = $2`,
		examID, questionID).Scan(&weight)
	return weight, err
}

// QuestionInExam reports whether the question is part of the exam.
func (r *ExamRepository) QuestionInExam(ctx context.Context, examID, questionID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM exam_questions WHERE exam_id = $1 AND question_id = $2)`,
		examID, questionID).Scan(&exists)
	return exists, err
}
