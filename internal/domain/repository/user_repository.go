package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de búsqueda devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// SetGoogleID vincula la cuenta con un subject de Google.
	SetGoogleID(userID, googleID string) error
	// SetResetToken guarda el token de recuperación y su expiración.
	SetResetToken(userID, token string, expires time.Time) error
	GetByResetToken(token string) (*entity.User, error)
	// UpdatePassword cambia el hash y limpia el token de recuperación.
	UpdatePassword(userID, passwordHash string) error
}
