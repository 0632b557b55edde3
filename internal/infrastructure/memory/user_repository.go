// Package memory implementa los puertos de persistencia en memoria (STORE_DRIVER=memory y tests).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda usuarios en un mapa. El email es único igual que con el índice de PostgreSQL.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
	now     func() time.Time
}

// NewUserRepository construye un repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// Create asigna ID y CreatedAt y guarda una copia del usuario.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.now().UTC()
	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	return nil
}

// FindByEmail busca por coincidencia exacta de email.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := *r.byID[id]
	return &u, nil
}

// FindByID busca por ID.
func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// List devuelve todos los usuarios, los más antiguos primero.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}
