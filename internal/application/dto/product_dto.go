package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock se materializa como un movimiento IN sintético: el libro de
// movimientos es la única fuente de verdad del stock.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Price        decimal.Decimal `json:"price"`
	MinStock     int             `json:"minStock" validate:"min=0"`
	InitialStock int             `json:"initialStock" validate:"min=0"`
	CategoryID   string          `json:"categoryId" validate:"required,uuid4"`
}

// UpdateProductRequest entrada para actualizar un producto.
// No hay campo de stock: el stock solo cambia vía movimientos.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int             `json:"minStock" validate:"min=0"`
	CategoryID  string          `json:"categoryId" validate:"required,uuid4"`
}

// ListProductsRequest filtros del listado de productos.
// MinStock filtra por la relación stock actual vs umbral: below | above.
type ListProductsRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"categoryId" validate:"omitempty,uuid4"`
	Sort       string `query:"sort" validate:"omitempty,oneof=name sku price created_at"`
	Order      string `query:"order" validate:"omitempty,oneof=asc desc"`
	MinStock   string `query:"minStock" validate:"omitempty,oneof=below above"`
}

// ProductResponse salida de un producto. CurrentStock es derivado (pliegue
// del libro de movimientos), nunca un campo almacenado.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	MinStock     int             `json:"minStock"`
	CategoryID   string          `json:"categoryId"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	CurrentStock int             `json:"currentStock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateProductResponse resultado de creación. Warning distingue el caso
// "creado" del caso "creado con advertencia" (el movimiento de stock inicial
// no pudo persistirse); nunca se oculta ese fallo parcial.
type CreateProductResponse struct {
	ProductResponse
	Warning string `json:"warning,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
