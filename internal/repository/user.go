package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
)

// UserRepository gives access to the users that own cards. User management
// lives elsewhere; the ledger only needs rows to reference.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	exec db.Executor
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(exec db.Executor) UserRepository {
	return &userRepository{exec: exec}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = time.Now().UTC()

	err := r.exec.QueryRowContext(ctx, `
		INSERT INTO users (username, role, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, user.Username, user.Role, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", classify(err))
	}
	return nil
}
