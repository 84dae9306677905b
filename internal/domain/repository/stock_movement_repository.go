package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string // IN | OUT
	From      *time.Time
	To        *time.Time
	Order     string // asc | desc (por created_at)
	Limit     int
	Offset    int
}

// MovementWithRefs es una fila de listado: el movimiento más los nombres
// de producto y autor resueltos por JOIN.
type MovementWithRefs struct {
	entity.StockMovement
	ProductName   string
	CreatedByName string
}

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos (DIP). El libro es append-only: alta y baja, nunca update.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos de un producto acotados al
	// propietario; es la entrada del pliegue de stock actual.
	ListByProduct(productID, ownerID string) ([]*entity.StockMovement, error)
	// ListByOwner devuelve todos los movimientos del propietario (solo
	// product_id, type y quantity garantizados); entrada de FoldByProduct.
	ListByOwner(ownerID string) ([]*entity.StockMovement, error)
	List(ownerID string, f MovementFilter) ([]*MovementWithRefs, error)
	// Delete devuelve domain.ErrNotFound si no borró ninguna fila.
	Delete(id, ownerID string) error
	// DeleteByProduct elimina todos los movimientos de un producto (cascada
	// del borrado de producto; usar dentro de la misma transacción).
	DeleteByProduct(productID string) error
}
