package entity

import "time"

// Category representa una categoría de productos de un usuario.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string // UserID propietario
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
