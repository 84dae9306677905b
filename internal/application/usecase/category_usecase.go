package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD de categorías, acotados al propietario.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Create crea una categoría del propietario.
func (uc *CategoryUseCase) Create(ownerID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista categorías del propietario con búsqueda y orden.
func (uc *CategoryUseCase) List(ownerID string, in dto.ListCategoriesRequest) (*dto.CategoryListResponse, error) {
	in.DefaultPage()
	f := repository.CategoryFilter{
		Search: foldAccents(in.Search),
		Sort:   in.Sort,
		Order:  in.Order,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if f.Sort == "" {
		f.Sort = "name"
	}
	if f.Order == "" {
		f.Order = "asc"
	}
	list, err := uc.categoryRepo.List(ownerID, f)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{
		Items: make([]dto.CategoryResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCategoryResponse(c))
	}
	return out, nil
}

// Update actualiza nombre y descripción. ErrNotFound si no existe o no es del propietario.
func (uc *CategoryUseCase) Update(id, ownerID string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	category.Description = in.Description
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría. Rechaza con ErrConflict si todavía hay
// productos asociados: categoría y productos no deben quedar inconsistentes.
func (uc *CategoryUseCase) Delete(id, ownerID string) error {
	n, err := uc.productRepo.CountByCategory(id, ownerID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.categoryRepo.Delete(id, ownerID)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
