package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // coincidencia parcial por nombre o SKU (sin acentos)
	CategoryID string
	Sort       string // name | sku | price | created_at
	Order      string // asc | desc
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las operaciones de lectura/escritura están acotadas al propietario.
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicate si el SKU ya existe para ese propietario.
	Create(product *entity.Product) error
	GetByID(id, ownerID string) (*entity.Product, error)
	List(ownerID string, f ProductFilter) ([]*entity.Product, error)
	// Update devuelve domain.ErrNotFound si el producto no existe o no es del propietario.
	Update(product *entity.Product) error
	SetImageURL(id, ownerID, imageURL string) error
	CountByCategory(categoryID, ownerID string) (int, error)
	// Delete devuelve domain.ErrNotFound si no borró ninguna fila.
	Delete(id, ownerID string) error
}
