package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex-backend/internal/model"
)

// StatsRepository aggregates dashboard figures.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// CountUsers counts users grouped by role.
func (r *StatsRepository) CountUsers(ctx context.Context) (model.UserStats, error) {
	var s model.UserStats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE role = 'admin'),
		        COUNT(*) FILTER (WHERE role = 'doctor'),
		        COUNT(*) FILTER (WHERE role = 'student')
		 FROM users`,
	).Scan(&s.Total, &s.Admins, &s.Doctors, &s.Students)
	return s, err
}

// CountExams counts exams grouped by status.
func (r *StatsRepository) CountExams(ctx context.Context) (model.ExamStats, error) {
	var s model.ExamStats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'draft'),
		        COUNT(*) FILTER (WHERE status = 'published'),
		        COUNT(*) FILTER (WHERE status = 'archived')
		 FROM exams`,
	).Scan(&s.Total, &s.Draft, &s.Published, &s.Archived)
	return s, err
}

// CountCourses counts all courses.
func (r *StatsRepository) CountCourses(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n)
	return n, err
}

// CountMajors counts all majors.
func (r *StatsRepository) CountMajors(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM majors`).Scan(&n)
	return n, err
}

// RecentExams retrieves the most recently created exams.
func (r *StatsRepository) RecentExams(ctx context.Context, limit int) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.course_id, e.name, e.exam_date, e.duration_minutes, e.instructions,
		        e.status, e.created_by, e.created_at, e.updated_at,
		        c.id, c.name, c.code, c.description, c.created_at, c.updated_at
		 FROM exams e JOIN courses c ON e.course_id = c.id
		 ORDER BY e.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExamsWithCourse(rows)
}

// TopEnrollments retrieves the courses with the most enrolled students.
func (r *StatsRepository) TopEnrollments(ctx context.Context, limit int) ([]model.CourseEnrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.code, COUNT(sc.student_id)
		 FROM courses c
		 LEFT JOIN student_courses sc ON sc.course_id = c.id
		 GROUP BY c.id
		 ORDER BY COUNT(sc.student_id) DESC, c.name
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CourseEnrollment
	for rows.Next() {
		var e model.CourseEnrollment
		if err := rows.Scan(&e.CourseID, &e.CourseName, &e.CourseCode, &e.StudentCount); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
