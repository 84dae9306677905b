package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// StockHandler expone el libro de movimientos: alta, listado, stock actual
// derivado y baja.
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Anota una entrada (IN) o salida (OUT) en el libro del producto.
// @Description  El stock actual nunca se almacena: se deriva sumando el libro.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "productId, type, quantity, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: errs})
	}
	out, err := h.uc.RegisterMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad debe ser entera > 0 y tipo IN u OUT"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Produce      json
// @Param        productId  query  string  false  "filtrar por producto"
// @Param        type       query  string  false  "IN | OUT"
// @Param        startDate  query  string  false  "desde (RFC 3339)"
// @Param        endDate    query  string  false  "hasta (RFC 3339)"
// @Param        order      query  string  false  "asc | desc (por fecha)"
// @Param        limit      query  int     false  "tamaño de página"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos", Fields: errs})
	}
	out, err := h.uc.ListMovements(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "startDate y endDate deben ser RFC 3339"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// CurrentStock godoc
// @Summary      Stock actual de un producto
// @Description  Suma de todos los movimientos del producto (IN suma, OUT resta).
// @Tags         stock
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CurrentStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/products/{productId} [get]
func (h *StockHandler) CurrentStock(c *fiber.Ctx) error {
	current, err := h.uc.CurrentStock(c.Context(), c.Params("productId"), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.CurrentStockResponse{CurrentStock: current})
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento de stock
// @Description  Borrado duro; el stock derivado del producto se ajusta solo en
// @Description  el próximo cálculo.
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204  "eliminado"
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/movements/{id} [delete]
func (h *StockHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.uc.DeleteMovement(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
