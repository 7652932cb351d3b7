package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
)

// MajorService handles the majors dictionary.
type MajorService struct {
	majorRepo *repository.MajorRepository
}

// NewMajorService creates a new MajorService.
func NewMajorService(majorRepo *repository.MajorRepository) *MajorService {
	return &MajorService{majorRepo: majorRepo}
}

// List retrieves all majors.
func (s *MajorService) List(ctx context.Context) ([]model.Major, error) {
	majors, err := s.majorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if majors == nil {
		majors = []model.Major{}
	}
	return majors, nil
}

// Get retrieves one major.
func (s *MajorService) Get(ctx context.Context, id uuid.UUID) (*model.Major, error) {
	major, err := s.majorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return major, nil
}

// Create adds a major with a unique name.
func (s *MajorService) Create(ctx context.Context, req *model.CreateMajorRequest) (*model.Major, error) {
	exists, err := s.majorRepo.NameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	major := &model.Major{Name: req.Name}
	if err := s.majorRepo.Create(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

// Update renames a major.
func (s *MajorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMajorRequest) (*model.Major, error) {
	major, err := s.majorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != "" && req.Name != major.Name {
		exists, err := s.majorRepo.NameExists(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrConflict
		}
		major.Name = req.Name
	}

	if err := s.majorRepo.Update(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

// Delete removes a major.
func (s *MajorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.majorRepo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}
