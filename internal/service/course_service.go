package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
	"github.com/acadex/acadex-backend/internal/response"
)

// CourseService handles courses, their major links, and role assignments.
type CourseService struct {
	courseRepo *repository.CourseRepository
	userRepo   *repository.UserRepository
	log        zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository, log zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		log:        log.With().Str("component", "course_service").Logger(),
	}
}

// List retrieves courses, optionally filtered by major, paginated.
func (s *CourseService) List(ctx context.Context, majorID uuid.UUID, page, perPage int) ([]model.Course, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	courses, total, err := s.courseRepo.ListPaginated(ctx, majorID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return courses, pagination, nil
}

// Get retrieves a course with the requested associations attached.
func (s *CourseService) Get(ctx context.Context, id uuid.UUID, include model.CourseInclude) (*model.CourseDetail, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	detail := &model.CourseDetail{Course: *course}
	if include.Majors {
		majors, err := s.courseRepo.ListMajors(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.Majors = majors
	}
	if include.Doctors {
		doctors, err := s.courseRepo.ListDoctors(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.Doctors = doctors
	}
	if include.Students {
		students, err := s.courseRepo.ListStudents(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.Students = students
	}
	return detail, nil
}

// Create adds a course and links it to majors in one transaction.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	exists, err := s.courseRepo.CodeExists(ctx, req.Code, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	majorIDs, err := parseUUIDs(req.MajorIDs)
	if err != nil {
		return nil, ErrNotFound
	}

	course := &model.Course{Name: req.Name, Code: req.Code, Description: req.Description}
	if err := s.courseRepo.CreateWithMajors(ctx, course, majorIDs); err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", course.ID.String()).Str("code", course.Code).Msg("course created")
	return course, nil
}

// Update edits a course. A non-nil major_ids list replaces the major links.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Code != "" && req.Code != course.Code {
		exists, err := s.courseRepo.CodeExists(ctx, req.Code, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrConflict
		}
		course.Code = req.Code
	}
	if req.Name != "" {
		course.Name = req.Name
	}
	if req.Description != "" {
		course.Description = req.Description
	}

	majorIDs, err := parseUUIDs(req.MajorIDs)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.MajorIDs == nil {
		majorIDs = nil
	}

	if err := s.courseRepo.UpdateWithMajors(ctx, course, majorIDs); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course unless exams reference it.
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	hasExams, err := s.courseRepo.HasExams(ctx, id)
	if err != nil {
		return err
	}
	if hasExams {
		return ErrCourseHasExams
	}
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

// AssignDoctor links a doctor to a course. Duplicate assignment is a conflict.
func (s *CourseService) AssignDoctor(ctx context.Context, doctorID, courseID uuid.UUID) error {
	return s.assign(ctx, doctorID, courseID, model.RoleDoctor)
}

// EnrollStudent links a student to a course. Duplicate enrollment is a conflict.
func (s *CourseService) EnrollStudent(ctx context.Context, studentID, courseID uuid.UUID) error {
	return s.assign(ctx, studentID, courseID, model.RoleStudent)
}

func (s *CourseService) assign(ctx context.Context, userID, courseID uuid.UUID, role model.Role) error {
	if _, err := s.userRepo.GetByIDAndRole(ctx, userID, role); err != nil {
		return ErrNotFound
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return ErrNotFound
	}

	var inserted bool
	var err error
	if role == model.RoleDoctor {
		inserted, err = s.courseRepo.AttachDoctor(ctx, userID, courseID)
	} else {
		inserted, err = s.courseRepo.AttachStudent(ctx, userID, courseID)
	}
	if err != nil {
		return err
	}
	if !inserted {
		return ErrConflict
	}
	return nil
}

// UnassignDoctor removes a doctor-course link.
func (s *CourseService) UnassignDoctor(ctx context.Context, doctorID, courseID uuid.UUID) error {
	if err := s.courseRepo.DetachDoctor(ctx, doctorID, courseID); err != nil {
		return ErrNotFound
	}
	return nil
}

// UnenrollStudent removes a student-course link.
func (s *CourseService) UnenrollStudent(ctx context.Context, studentID, courseID uuid.UUID) error {
	if err := s.courseRepo.DetachStudent(ctx, studentID, courseID); err != nil {
		return ErrNotFound
	}
	return nil
}

// ListForDoctor retrieves the courses a doctor teaches.
func (s *CourseService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Course, error) {
	courses, err := s.courseRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// ListForStudent retrieves the courses a student is enrolled in.
func (s *CourseService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Course, error) {
	courses, err := s.courseRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
