package repository

import (
	"context"

	"github.com/jhoicas/users-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	// Create persiste el usuario y asigna ID y CreatedAt.
	// Devuelve domain.ErrEmailAlreadyExists si el email viola el índice único.
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
