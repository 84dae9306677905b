package dto

import "time"

// RegisterRequest entrada para registrar un usuario.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=3"`
}

// LoginRequest entrada para iniciar sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest entrada para login con Google (código de autorización OAuth).
type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// ForgotPasswordRequest entrada para solicitar recuperación de contraseña.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest entrada para restablecer la contraseña con un token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// TokenResponse respuesta con el JWT emitido.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse respuesta informativa simple.
type MessageResponse struct {
	Message string `json:"message"`
}
