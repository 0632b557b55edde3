package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	// ErrUserNotFound y ErrIncorrectPassword envuelven ErrUnauthorized: ambos son AuthError.
	ErrUserNotFound      = authError("user does not exist")
	ErrIncorrectPassword = authError("incorrect password")
	// ErrMissingSigningSecret es un error de despliegue (JWT_SECRET ausente), no del cliente.
	ErrMissingSigningSecret = errors.New("jwt signing secret is not configured")
)

// ValidationError describe la primera regla de entrada incumplida.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError construye un ValidationError para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation indica si err (o alguno envuelto) es un *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type authErr struct {
	msg string
}

func authError(msg string) error { return &authErr{msg: msg} }

func (e *authErr) Error() string { return e.msg }

func (e *authErr) Unwrap() error { return ErrUnauthorized }
