package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase opera el libro de movimientos: append, listado, stock actual
// derivado y borrado. Cada append es un insert independiente, sin bloqueo en
// proceso: el pliegue es conmutativo y no depende del orden de inserción.
type StockUseCase struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(movementRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// RegisterMovement registra un movimiento (append). Precondiciones: cantidad
// entera > 0, tipo IN u OUT, producto existente y del propietario. No
// recalcula ni almacena ningún total derivado.
func (uc *StockUseCase) RegisterMovement(ctx context.Context, ownerID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 || !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID, ownerID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		// Producto inexistente o de otro propietario: misma respuesta, no se
		// filtra la existencia de datos ajenos.
		return nil, domain.ErrNotFound
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
		CreatedBy: ownerID,
		CreatedAt: time.Now(),
	}
	if err := uc.movementRepo.Create(mov); err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// CurrentStock devuelve el stock actual de un producto: pliegue de todos sus
// movimientos acotados al propietario. Producto no visible => ErrNotFound.
func (uc *StockUseCase) CurrentStock(ctx context.Context, productID, ownerID string) (int, error) {
	product, err := uc.productRepo.GetByID(productID, ownerID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByProduct(productID, ownerID)
	if err != nil {
		return 0, err
	}
	return ledger.Fold(movements), nil
}

// ListMovements lista movimientos del propietario con filtros de producto,
// tipo, rango de fechas y orden por fecha de creación.
func (uc *StockUseCase) ListMovements(ctx context.Context, ownerID string, in dto.ListMovementsRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()

	f := repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		Order:     in.Order,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if f.Order == "" {
		f.Order = "desc"
	}
	if in.StartDate != "" {
		from, err := time.Parse(time.RFC3339, in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.From = &from
	}
	if in.EndDate != "" {
		to, err := time.Parse(time.RFC3339, in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.To = &to
	}

	rows, err := uc.movementRepo.List(ownerID, f)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(rows)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, r := range rows {
		item := toMovementResponse(&r.StockMovement)
		item.ProductName = r.ProductName
		item.CreatedByName = r.CreatedByName
		out.Items = append(out.Items, *item)
	}
	return out, nil
}

// DeleteMovement elimina un movimiento del libro (borrado duro). El próximo
// pliegue del producto refleja la baja por sí solo: no hay total cacheado que
// reparar. ErrNotFound si el movimiento no existe o no es del propietario.
func (uc *StockUseCase) DeleteMovement(ctx context.Context, id, ownerID string) error {
	return uc.movementRepo.Delete(id, ownerID)
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
