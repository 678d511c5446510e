package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cs-study-hub/notes-api/internal/models"
)

// UserRepository provides database access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row. Uniqueness of uccms_number is enforced
// by the store constraint, not checked here; a violation surfaces as the
// driver error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO users (id, uccms_number, full_name, password_hash, role, account_status, created_at)
		VALUES (:id, :uccms_number, :full_name, :password_hash, :role, :account_status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByCredentials returns the user matching both identifier and password
// digest. The digest equality happens in the store, exactly as the legacy
// lookup did.
func (r *UserRepository) FindByCredentials(ctx context.Context, uccmsNumber, passwordHash string) (*models.User, error) {
	const query = `SELECT id, uccms_number, full_name, password_hash, role, account_status, created_at
		FROM users WHERE uccms_number = $1 AND password_hash = $2 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, uccmsNumber, passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by credentials: %w", err)
	}
	return &user, nil
}
