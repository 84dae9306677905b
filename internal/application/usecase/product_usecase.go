package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// WarningInitialStock aviso cuando el producto quedó creado pero el
// movimiento de stock inicial no pudo persistirse.
const WarningInitialStock = "producto creado pero no se pudo registrar el stock inicial"

// ProductUseCase casos de uso CRUD de productos, acotados al propietario.
// El stock actual siempre se deriva del libro de movimientos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
	txRunner     TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
	txRunner TxRunner,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
		txRunner:     txRunner,
	}
}

// Create crea un producto. Si InitialStock > 0 registra un movimiento IN
// sintético ("Stock inicial") en un segundo insert deliberadamente fuera de
// transacción: si ese insert falla, el producto queda creado y la respuesta
// lleva Warning; el fallo parcial se señala siempre, nunca se oculta.
func (uc *ProductUseCase) Create(ownerID string, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	if in.Price.LessThan(decimal.Zero) || in.MinStock < 0 || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID, ownerID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		SKU:         normalizeSKU(in.SKU),
		Price:       in.Price,
		MinStock:    in.MinStock,
		CategoryID:  in.CategoryID,
		CreatedBy:   ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	out := &dto.CreateProductResponse{ProductResponse: *toProductResponse(product, 0)}
	if in.InitialStock > 0 {
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  in.InitialStock,
			Notes:     "Stock inicial",
			CreatedBy: ownerID,
			CreatedAt: now,
		}
		if err := uc.movementRepo.Create(mov); err != nil {
			out.Warning = WarningInitialStock
			return out, nil
		}
		out.CurrentStock = in.InitialStock
	}
	return out, nil
}

// GetByID obtiene un producto del propietario con su stock derivado.
func (uc *ProductUseCase) GetByID(id, ownerID string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByProduct(id, ownerID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, ledger.Fold(movements)), nil
}

// List lista productos con búsqueda (sin acentos), filtro por categoría,
// orden y paginación. Cada ítem lleva su stock derivado; el filtro
// minStock=below|above se evalúa con ese stock contra el umbral del producto.
func (uc *ProductUseCase) List(ownerID string, in dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	f := repository.ProductFilter{
		Search:     foldAccents(in.Search),
		CategoryID: in.CategoryID,
		Sort:       in.Sort,
		Order:      in.Order,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if f.Sort == "" {
		f.Sort = "name"
	}
	if f.Order == "" {
		f.Order = "asc"
	}
	products, err := uc.productRepo.List(ownerID, f)
	if err != nil {
		return nil, err
	}

	// Un solo barrido del libro del propietario y pliegue por producto.
	entries, err := uc.movementRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	totals := ledger.FoldByProduct(entries)

	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, p := range products {
		current := totals[p.ID] // 0 si no tiene movimientos
		if in.MinStock == "below" && !ledger.BelowMinimum(current, p.MinStock) {
			continue
		}
		if in.MinStock == "above" && ledger.BelowMinimum(current, p.MinStock) {
			continue
		}
		out.Items = append(out.Items, *toProductResponse(p, current))
	}
	return out, nil
}

// Update actualiza los datos del producto. No hay campo de stock: el stock
// solo cambia vía movimientos.
func (uc *ProductUseCase) Update(id, ownerID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.LessThan(decimal.Zero) || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID, ownerID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	product.Name = in.Name
	product.Description = in.Description
	product.SKU = normalizeSKU(in.SKU)
	product.Price = in.Price
	product.MinStock = in.MinStock
	product.CategoryID = in.CategoryID
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}

	movements, err := uc.movementRepo.ListByProduct(id, ownerID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, ledger.Fold(movements)), nil
}

// SetImage persiste la URL pública de la imagen subida.
func (uc *ProductUseCase) SetImage(id, ownerID, imageURL string) error {
	return uc.productRepo.SetImageURL(id, ownerID, imageURL)
}

// Delete elimina el producto y todos sus movimientos EN UNA SOLA transacción:
// si cualquiera de los dos pasos falla, no cae ninguno. ErrNotFound si el
// producto no existe o no es del propietario (la transacción se revierte).
func (uc *ProductUseCase) Delete(ctx context.Context, id, ownerID string) error {
	return uc.txRunner.Run(ctx, func(
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := movementRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id, ownerID)
	})
}

func toProductResponse(p *entity.Product, currentStock int) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		SKU:          p.SKU,
		Price:        p.Price,
		MinStock:     p.MinStock,
		CategoryID:   p.CategoryID,
		ImageURL:     p.ImageURL,
		CurrentStock: currentStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
