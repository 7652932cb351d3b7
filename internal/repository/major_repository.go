package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex-backend/internal/model"
)

// MajorRepository handles major data access.
type MajorRepository struct {
	pool *pgxpool.Pool
}

// NewMajorRepository creates a new MajorRepository.
func NewMajorRepository(pool *pgxpool.Pool) *MajorRepository {
	return &MajorRepository{pool: pool}
}

// GetByID retrieves a major by id.
func (r *MajorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Major, error) {
	m := &model.Major{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM majors WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List retrieves all majors ordered by name.
func (r *MajorRepository) List(ctx context.Context) ([]model.Major, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM majors ORDER BY name`)
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

// NameExists reports whether a major name is taken.
func (r *MajorRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM majors WHERE name = $1)`, name).Scan(&exists)
	return exists, err
}

// Create inserts a new major.
func (r *MajorRepository) Create(ctx context.Context, m *model.Major) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO majors (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		m.Name,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// Update renames a major.
func (r *MajorRepository) Update(ctx context.Context, m *model.Major) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE majors SET name = $1, updated_at = NOW() WHERE id = $2`, m.Name, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a major.
func (r *MajorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM majors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
