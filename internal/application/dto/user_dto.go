package dto

import "time"

// RegisterRequest entrada para POST /users (password en texto, se hashea en el caso de uso).
type RegisterRequest struct {
	Name     string `json:"name" validate:"name_length"`
	Email    string `json:"email" validate:"email_shape"`
	Password string `json:"password" validate:"min=8,password_strength"`
}

// RegisterResponse salida de registro: sin id ni token.
type RegisterResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionRequest entrada para POST /users/session.
type SessionRequest struct {
	Email    string `json:"email" validate:"email_shape"`
	Password string `json:"password" validate:"min=8"`
}

// SessionResponse salida con token JWT. Nunca incluye password ni created_at.
type SessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// UserResponse proyección pública de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
