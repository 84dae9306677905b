package dto

import "time"

// CreateMovementRequest entrada para registrar un movimiento de stock.
type CreateMovementRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Type      string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

// ListMovementsRequest filtros del listado de movimientos.
type ListMovementsRequest struct {
	PageRequest
	ProductID string `query:"productId" validate:"omitempty,uuid4"`
	Type      string `query:"type" validate:"omitempty,oneof=IN OUT"`
	StartDate string `query:"startDate"` // RFC 3339
	EndDate   string `query:"endDate"`   // RFC 3339
	Order     string `query:"order" validate:"omitempty,oneof=asc desc"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName,omitempty"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	CreatedByName string    `json:"createdByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CurrentStockResponse stock actual derivado de un producto.
type CurrentStockResponse struct {
	CurrentStock int `json:"currentStock"`
}
