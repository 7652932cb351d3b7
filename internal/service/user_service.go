package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
	"github.com/acadex/acadex-backend/internal/response"
)

// UserService handles account management.
type UserService struct {
	userRepo  *repository.UserRepository
	majorRepo *repository.MajorRepository
	auth      *AuthService
	log       zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, majorRepo *repository.MajorRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		majorRepo: majorRepo,
		auth:      auth,
		log:       log.With().Str("component", "user_service").Logger(),
	}
}

// List retrieves users of one role, paginated. withDetails loads each user's
// role profile alongside the account row.
func (s *UserService) List(ctx context.Context, role model.Role, page, perPage int, withDetails bool) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	users, total, err := s.userRepo.ListByRole(ctx, role, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	if withDetails {
		for i := range users {
			if err := s.userRepo.LoadProfile(ctx, &users[i]); err != nil {
				return nil, nil, fmt.Errorf("load profile: %w", err)
			}
		}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return users, pagination, nil
}

// Get retrieves a single user with its role profile.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.userRepo.LoadProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

// Create registers an account together with its role profile.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Gender:       req.Gender,
		Role:         req.Role,
		PasswordHash: hash,
	}

	switch req.Role {
	case model.RoleStudent, model.RoleDoctor:
		majorID, err := uuid.Parse(req.MajorID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.majorRepo.GetByID(ctx, majorID); err != nil {
			return nil, ErrNotFound
		}
		if req.Role == model.RoleStudent {
			user.Profile = model.StudentProfile{MajorID: majorID}
		} else {
			user.Profile = model.DoctorProfile{MajorID: majorID, Specialization: req.Specialization}
		}
	default:
		user.Profile = model.AdminProfile{}
	}

	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// Update edits an account. The role never changes; profile fields update the
// existing profile variant.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.userRepo.LoadProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if req.Role != "" && req.Role != user.Role {
		return nil, ErrRoleImmutable
	}

	if req.Email != "" && req.Email != user.Email {
		exists, err := s.userRepo.EmailExists(ctx, req.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrConflict
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.applyProfileUpdate(ctx, user, req); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateWithProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) applyProfileUpdate(ctx context.Context, user *model.User, req *model.UpdateUserRequest) error {
	var majorID uuid.UUID
	if req.MajorID != "" {
		parsed, err := uuid.Parse(req.MajorID)
		if err != nil {
			return ErrNotFound
		}
		if _, err := s.majorRepo.GetByID(ctx, parsed); err != nil {
			return ErrNotFound
		}
		majorID = parsed
	}

	switch p := user.Profile.(type) {
	case model.StudentProfile:
		if majorID != uuid.Nil {
			p.MajorID = majorID
			p.Major = nil
		}
		user.Profile = p
	case model.DoctorProfile:
		if majorID != uuid.Nil {
			p.MajorID = majorID
			p.Major = nil
		}
		if req.Specialization != "" {
			p.Specialization = req.Specialization
		}
		user.Profile = p
	}
	return nil
}

// Delete removes an account and its profile.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	s.log.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}
