package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/database"
)

// UserRepository is the durable account store. Email lookups are case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

const userColumns = `id, name, email, password_hash, COALESCE(organization, ''), role, created_at`

// Repository handles user persistence.
type Repository struct {
	db database.DBTX
}

// NewRepository creates an auth repository.
func NewRepository(db database.DBTX) *Repository {
	return &Repository{db: db}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Organization, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", database.MapError(err))
	}
	return u, nil
}

// GetByEmail returns a user by email, ignoring case.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", database.MapError(err))
	}
	return u, nil
}

// Create inserts a new user. ErrDuplicate when the email is taken in any case.
func (r *Repository) Create(ctx context.Context, u *models.User) error {
	const q = `INSERT INTO users (id, name, email, password_hash, organization, role, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.db.Exec(ctx, q, u.ID, u.Name, u.Email, u.Password, u.Organization, string(u.Role), u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", database.MapError(err))
	}
	return nil
}
