package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CategoryFilter filtros del listado de categorías.
type CategoryFilter struct {
	Search string // coincidencia parcial por nombre
	Sort   string // name | created_at
	Order  string // asc | desc
	Limit  int
	Offset int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las operaciones están acotadas al propietario (ownerID).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id, ownerID string) (*entity.Category, error)
	List(ownerID string, f CategoryFilter) ([]*entity.Category, error)
	// Update devuelve domain.ErrNotFound si la categoría no existe o no es del propietario.
	Update(category *entity.Category) error
	// Delete devuelve domain.ErrNotFound si no borró ninguna fila.
	Delete(id, ownerID string) error
}
