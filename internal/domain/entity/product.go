package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un usuario.
// El stock actual NO se almacena: se deriva plegando los movimientos del
// producto (ver internal/domain/ledger). MinStock es el umbral de reposición.
type Product struct {
	ID          string
	Name        string
	Description string
	SKU         string          // código único por usuario
	Price       decimal.Decimal // precio de venta, >= 0
	MinStock    int             // umbral de stock mínimo, >= 0
	CategoryID  string
	ImageURL    string // vacío si no tiene imagen
	CreatedBy   string // UserID propietario
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
