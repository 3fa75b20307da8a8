package output

import (
	"context"

	"hackx/internal/domain/entities"
)

type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrDuplicateEmail when a user
	// with the same email (case-insensitive) already exists.
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	All(ctx context.Context) ([]entities.User, error)
	// Update replaces the stored user with the same id. Returns
	// domain.ErrUserNotFound when the id is absent.
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
}
