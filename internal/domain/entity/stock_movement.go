package entity

import "time"

// Tipos de movimiento de stock. La dirección codifica el signo: la cantidad
// siempre es positiva.
const (
	MovementTypeIn  = "IN"  // entrada
	MovementTypeOut = "OUT" // salida
)

// ValidMovementType indica si s es un tipo de movimiento conocido.
func ValidMovementType(s string) bool {
	return s == MovementTypeIn || s == MovementTypeOut
}

// StockMovement es una entrada del libro de movimientos (append-only).
// Un movimiento es inmutable después de creado: no existe operación de
// actualización, las correcciones se modelan como movimientos compensatorios
// o como borrado de la entrada errónea.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // IN, OUT
	Quantity  int    // siempre > 0; el tipo codifica el signo
	Notes     string
	CreatedBy string // UserID propietario
	CreatedAt time.Time
}
