package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/application/validation"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/pkg/jwt"
)

// AccountUseCase casos de uso de cuentas: registro, sesión, listado y consulta.
type AccountUseCase struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	validate *validation.Validator
}

// NewAccountUseCase construye el caso de uso inyectando sus colaboradores.
func NewAccountUseCase(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AccountUseCase {
	return &AccountUseCase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validation.New(),
	}
}

// Register valida la entrada, rechaza emails repetidos, hashea la contraseña y persiste el usuario.
// Devuelve sólo name y email.
func (uc *AccountUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	in.Name = validation.NormalizeName(in.Name)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	// Dos registros concurrentes pueden pasar el chequeo anterior; el índice único
	// de la tabla resuelve la carrera y Create devuelve ErrEmailAlreadyExists.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{Name: user.Name, Email: user.Email}, nil
}

// Login verifica email/password y emite un JWT con subject = id del usuario.
// ErrUserNotFound y ErrIncorrectPassword llevan mensajes distintos (enumeración de usuarios, ver DESIGN.md).
func (uc *AccountUseCase) Login(ctx context.Context, in dto.SessionRequest) (*dto.SessionResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	ok, err := uc.hasher.Compare(ctx, user.PasswordHash, in.Password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, domain.ErrIncorrectPassword
	}
	token, err := uc.tokens.Generate(user.ID, user.Name, user.Email)
	if err != nil {
		if errors.Is(err, jwt.ErrMissingSecret) {
			return nil, domain.ErrMissingSigningSecret
		}
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &dto.SessionResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

// ListUsers devuelve todos los usuarios sin password. Sin filas devuelve un slice vacío.
func (uc *AccountUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

// GetUserByID obtiene un usuario por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *AccountUseCase) GetUserByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "id is required")
	}
	// Los IDs son UUID: cualquier otro valor no puede existir en la tabla.
	// Mayúsculas, {…} y urn:uuid: se reducen a la forma canónica antes de consultar.
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.FindByID(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
