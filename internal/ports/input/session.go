package input

import (
	"context"

	"hackx/internal/domain/entities"
)

type SessionUseCase interface {
	SignUp(ctx context.Context, name, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*entities.User, error)
	IsAdmin(ctx context.Context, email string) bool
}
