package service

import (
	"context"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
)

// StatsService assembles the admin dashboard.
type StatsService struct {
	statsRepo *repository.StatsRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Dashboard aggregates platform-wide counts and recent activity.
func (s *StatsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	users, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	exams, err := s.statsRepo.CountExams(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.statsRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	majors, err := s.statsRepo.CountMajors(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.statsRepo.RecentExams(ctx, 5)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []model.Exam{}
	}
	top, err := s.statsRepo.TopEnrollments(ctx, 5)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []model.CourseEnrollment{}
	}

	return &model.DashboardStats{
		Users:          users,
		Courses:        courses,
		Majors:         majors,
		Exams:          exams,
		RecentExams:    recent,
		TopEnrollments: top,
	}, nil
}
