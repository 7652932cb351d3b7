package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex-backend/internal/model"
)

// UserRepository handles user and role-profile data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, gender, role, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Gender, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by id, without its role profile.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email, without its role profile.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByIDAndRole retrieves a user only if it carries the expected role.
func (r *UserRepository) GetByIDAndRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND role = $2`, id, role))
}

// EmailExists reports whether an email is already registered, optionally
// excluding one user id (for updates).
func (r *UserRepository) EmailExists(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, exclude,
	).Scan(&exists)
	return exists, err
}

// ListByRole retrieves users with pagination, optionally filtered by role.
func (r *UserRepository) ListByRole(ctx context.Context, role model.Role, limit, offset int) ([]model.User, int, error) {
	countQuery := `SELECT COUNT(*) FROM users`
	query := `SELECT ` + userColumns + ` FROM users`
	var countArgs, args []any

	if role != "" {
		countQuery += ` WHERE role = $1`
		query += ` WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		countArgs = append(countArgs, role)
		args = append(args, role, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
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

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Gender, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// CreateWithProfile inserts a user and its role-profile row in one
// transaction, so a profile failure leaves no orphaned user row.
func (r *UserRepository) CreateWithProfile(ctx context.Context, u *model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, gender, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.Gender, u.Role, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	switch p := u.Profile.(type) {
	case model.StudentProfile:
		p.UserID = u.ID
		u.Profile = p
		if _, err := tx.Exec(ctx,
			`INSERT INTO students (user_id, major_id) VALUES ($1, $2)`,
			u.ID, p.MajorID); err != nil {
			return fmt.Errorf("insert student profile: %w", err)
		}
	case model.DoctorProfile:
		p.UserID = u.ID
		u.Profile = p
		if _, err := tx.Exec(ctx,
			`INSERT INTO doctors (user_id, major_id, specialization) VALUES ($1, $2, $3)`,
			u.ID, p.MajorID, p.Specialization); err != nil {
			return fmt.Errorf("insert doctor profile: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// LoadProfile attaches the role-specific profile variant to a user.
func (r *UserRepository) LoadProfile(ctx context.Context, u *model.User) error {
	switch u.Role {
	case model.RoleStudent:
		var p model.StudentProfile
		var m model.Major
		err := r.pool.QueryRow(ctx,
			`SELECT s.user_id, s.major_id, m.id, m.name, m.created_at, m.updated_at
			 FROM students s JOIN majors m ON s.major_id = m.id
			 WHERE s.user_id = $1`, u.ID,
		).Scan(&p.UserID, &p.MajorID, &m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return err
		}
		p.Major = &m
		u.Profile = p
	case model.RoleDoctor:
		var p model.DoctorProfile
		var m model.Major
		err := r.pool.QueryRow(ctx,
			`SELECT d.user_id, d.major_id, d.specialization, m.id, m.name, m.created_at, m.updated_at
			 FROM doctors d JOIN majors m ON d.major_id = m.id
			 WHERE d.user_id = $1`, u.ID,
		).Scan(&p.UserID, &p.MajorID, &p.Specialization, &m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return err
		}
		p.Major = &m
		u.Profile = p
	default:
		u.Profile = model.AdminProfile{}
	}
	return nil
}

// UpdateWithProfile applies user and profile changes in one transaction.
// The role itself is never touched.
func (r *UserRepository) UpdateWithProfile(ctx context.Context, u *model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, gender = $3, password_hash = $4, updated_at = NOW()
		 WHERE id = $5`,
		u.Name, u.Email, u.Gender, u.PasswordHash, u.ID); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	switch p := u.Profile.(type) {
	case model.StudentProfile:
		if _, err := tx.Exec(ctx,
			`UPDATE students SET major_id = $1 WHERE user_id = $2`,
			p.MajorID, u.ID); err != nil {
			return fmt.Errorf("update student profile: %w", err)
		}
	case model.DoctorProfile:
		if _, err := tx.Exec(ctx,
			`UPDATE doctors SET major_id = $1, specialization = $2 WHERE user_id = $3`,
			p.MajorID, p.Specialization, u.ID); err != nil {
			return fmt.Errorf("update doctor profile: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a user; profile rows cascade.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
