package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}

// ListCategoriesRequest filtros del listado de categorías.
type ListCategoriesRequest struct {
	PageRequest
	Search string `query:"search"`
	Sort   string `query:"sort" validate:"omitempty,oneof=name created_at"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
