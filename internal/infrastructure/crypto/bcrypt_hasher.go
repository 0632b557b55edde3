package crypto

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/users-api/internal/application/account"
	"github.com/jhoicas/users-api/internal/domain"
)

var _ account.PasswordHasher = (*BcryptHasher)(nil)

// DefaultCost costo bcrypt usado para nuevas contraseñas.
const DefaultCost = 10

// BcryptHasher hashea con bcrypt. Como bcrypt es CPU-bound, limita el trabajo
// simultáneo a GOMAXPROCS para no acaparar los hilos que atienden peticiones.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher construye el hasher. Un cost fuera de rango usa DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Hash devuelve el hash bcrypt de password.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError("password", "password must be at most 72 bytes")
		}
		return "", err
	}
	return string(hash), nil
}

// Compare verifica password contra hash. Un hash mal formado cuenta como no coincidencia.
func (h *BcryptHasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword),
		errors.Is(err, bcrypt.ErrHashTooShort),
		errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		var (
			versionErr bcrypt.HashVersionTooNewError
			prefixErr  bcrypt.InvalidHashPrefixError
			costErr    bcrypt.InvalidCostError
		)
		if errors.As(err, &versionErr) || errors.As(err, &prefixErr) || errors.As(err, &costErr) {
			return false, nil
		}
		return false, err
	}
}

// Cost devuelve el costo almacenado en un hash bcrypt.
func Cost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}
