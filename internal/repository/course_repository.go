package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex-backend/internal/model"
)

// CourseRepository handles course, major-association, and assignment data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByID retrieves a course by id.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, code, description, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CodeExists reports whether a course code is taken, excluding one course id.
func (r *CourseRepository) CodeExists(ctx context.Context, code string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1 AND id <> $2)`, code, exclude,
	).Scan(&exists)
	return exists, err
}

// ListPaginated retrieves courses with pagination, optionally filtered by major.
func (r *CourseRepository) ListPaginated(ctx context.Context, majorID uuid.UUID, limit, offset int) ([]model.Course, int, error) {
	countQuery := `SELECT COUNT(*) FROM courses`
	query := `SELECT id, name, code, description, created_at, updated_at FROM courses`
	var countArgs, args []any

	if majorID != uuid.Nil {
		filter := ` WHERE id IN (SELECT course_id FROM major_courses WHERE major_id = $1)`
		countQuery += filter
		query += filter + ` ORDER BY code LIMIT $2 OFFSET $3`
		countArgs = append(countArgs, majorID)
		args = append(args, majorID, limit, offset)
	} else {
		query += ` ORDER BY code LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}

// CreateWithMajors inserts a course and its major associations in one
// transaction; a bad major id rolls back the whole operation.
func (r *CourseRepository) CreateWithMajors(ctx context.Context, c *model.Course, majorIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO courses (name, code, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Code, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	for _, majorID := range majorIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO major_courses (major_id, course_id) VALUES ($1, $2)`,
			majorID, c.ID); err != nil {
			return fmt.Errorf("associate major %s: %w", majorID, err)
		}
	}

	return tx.Commit(ctx)
}

// UpdateWithMajors applies course changes and, when majorIDs is non-nil,
// replaces the major associations, all in one transaction.
func (r *CourseRepository) UpdateWithMajors(ctx context.Context, c *model.Course, majorIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE courses SET name = $1, code = $2, description = $3, updated_at = NOW()
		 WHERE id = $4`,
		c.Name, c.Code, c.Description, c.ID); err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	if majorIDs != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM major_courses WHERE course_id = $1`, c.ID); err != nil {
			return fmt.Errorf("clear majors: %w", err)
		}
		for _, majorID := range majorIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO major_courses (major_id, course_id) VALUES ($1, $2)`,
				majorID, c.ID); err != nil {
				return fmt.Errorf("associate major %s: %w", majorID, err)
			}
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a course and its association rows.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// HasExams reports whether any exam references the course.
func (r *CourseRepository) HasExams(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM exams WHERE course_id = $1)`, id).Scan(&exists)
	return exists, err
}

// ListMajors retrieves the majors associated with a course.
func (r *CourseRepository) ListMajors(ctx context.Context, courseID uuid.UUID) ([]model.Major, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.name, m.created_at, m.updated_at
		 FROM majors m JOIN major_courses mc ON mc.major_id = m.id
		 WHERE mc.course_id = $1 ORDER BY m.name`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []model.Major
	for rows.Next() {
		var m model.Major
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}

// ─── Assignments ───────────────────────────────────────────────────────────

// AttachDoctor links a doctor to a course. Returns false when the link
// already existed.
func (r *CourseRepository) AttachDoctor(ctx context.Context, doctorID, courseID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO doctor_courses (doctor_id, course_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, doctorID, courseID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DetachDoctor unlinks a doctor from a course.
func (r *CourseRepository) DetachDoctor(ctx context.Context, doctorID, courseID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM doctor_courses WHERE doctor_id = $1 AND course_id = $2`,
		doctorID, courseID)
	return err
}

// AttachStudent enrolls a student in a course. Returns false when the
// enrollment already existed.
func (r *CourseRepository) AttachStudent(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, studentID, courseID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DetachStudent removes a student's enrollment.
func (r *CourseRepository) DetachStudent(ctx context.Context, studentID, courseID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM student_courses WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID)
	return err
}

// IsDoctorAssigned reports whether a doctor teaches a course.
func (r *CourseRepository) IsDoctorAssigned(ctx context.Context, doctorID, courseID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctor_courses WHERE doctor_id = $1 AND course_id = $2)`,
		doctorID, courseID).Scan(&exists)
	return exists, err
}

// IsStudentEnrolled reports whether a student is enrolled in a course.
func (r *CourseRepository) IsStudentEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM student_courses WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	return exists, err
}

// ListByDoctor retrieves the courses a doctor teaches.
func (r *CourseRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Course, error) {
	return r.listAssigned(ctx,
		`SELECT c.id, c.name, c.code, c.description, c.created_at, c.updated_at
		 FROM courses c JOIN doctor_courses dc ON dc.course_id = c.id
		 WHERE dc.doctor_id = $1 ORDER BY c.code`, doctorID)
}

// ListByStudent retrieves the courses a student is enrolled in.
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Course, error) {
	return r.listAssigned(ctx,
		`SELECT c.id, c.name, c.code, c.description, c.created_at, c.updated_at
		 FROM courses c JOIN student_courses sc ON sc.course_id = c.id
		 WHERE sc.student_id = $1 ORDER BY c.code`, studentID)
}

func (r *CourseRepository) listAssigned(ctx context.Context, query string, userID uuid.UUID) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListStudents retrieves the students enrolled in a course.
func (r *CourseRepository) ListStudents(ctx context.Context, courseID uuid.UUID) ([]model.User, error) {
	return r.listMembers(ctx,
		`SELECT u.id, u.name, u.email, u.gender, u.role, u.password_hash, u.created_at, u.updated_at
		 FROM users u JOIN student_courses sc ON sc.student_id = u.id
		 WHERE sc.course_id = $1 ORDER BY u.name`, courseID)
}

// ListDoctors retrieves the doctors assigned to a course.
func (r *CourseRepository) ListDoctors(ctx context.Context, courseID uuid.UUID) ([]model.User, error) {
	return r.listMembers(ctx,
		`SELECT u.id, u.name, u.email, u.gender, u.role, u.password_hash, u.created_at, u.updated_at
		 FROM users u JOIN doctor_courses dc ON dc.doctor_id = u.id
		 WHERE dc.course_id = $1 ORDER BY u.name`, courseID)
}

func (r *CourseRepository) listMembers(ctx context.Context, query string, courseID uuid.UUID) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Gender, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
