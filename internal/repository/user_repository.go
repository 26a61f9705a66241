package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/google/uuid"
)

// UserRepository is read-only: account provisioning lives in the identity
// service, this backend only resolves principals.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, is_active, is_superuser, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.IsActive, &user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.IsActive, &user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}
