package entity

import "time"

// User representa un usuario propietario de su propio catálogo e inventario.
// Todo recurso (categoría, producto, movimiento) queda ligado a su CreatedBy.
type User struct {
	ID                string
	Email             string
	PasswordHash      string // bcrypt hash, nunca plano en dominio después de persistir
	FullName          string
	GoogleID          string     // vacío si nunca inició sesión con Google
	ResetToken        string     // token de recuperación de contraseña (vacío si no hay uno activo)
	ResetTokenExpires *time.Time // expiración del token de recuperación
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
