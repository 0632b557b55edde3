package account

import (
	"context"

	"github.com/jhoicas/users-api/pkg/jwt"
)

// PasswordHasher hashea y verifica contraseñas con un hash salado de un solo sentido.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Compare devuelve false (sin error) si la contraseña no coincide o el hash almacenado está mal formado.
	Compare(ctx context.Context, hash, password string) (bool, error)
}

// TokenIssuer firma y verifica bearer tokens.
type TokenIssuer interface {
	Generate(subject, name, email string) (string, error)
	Parse(token string) (*jwt.Claims, error)
}
