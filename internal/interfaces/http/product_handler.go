package http

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// maxImageSize límite de tamaño para imágenes de producto (5 MB).
const maxImageSize = 5 << 20

// ProductHandler maneja el CRUD de productos y la subida de imagen.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	uploads config.UploadsConfig
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, uploads config.UploadsConfig) *ProductHandler {
	return &ProductHandler{uc: uc, uploads: uploads}
}

// Create godoc
// @Summary      Crear producto
// @Description  Si initialStock > 0 se registra un movimiento IN "Stock inicial".
// @Description  Si ese registro falla, el producto queda creado y la respuesta incluye warning.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: errs})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio, stock mínimo y stock inicial deben ser >= 0"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CATEGORY_NOT_FOUND", Message: "categoría no encontrada"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SKU_EXISTS", Message: "ya existe un producto con ese SKU"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  minStock=below devuelve solo productos con stock actual por debajo
// @Description  del mínimo; above, el resto. El stock igual al mínimo no está "below".
// @Tags         products
// @Produce      json
// @Param        search      query  string  false  "búsqueda por nombre o SKU (sin acentos)"
// @Param        categoryId  query  string  false  "filtrar por categoría"
// @Param        sort        query  string  false  "name | sku | price | created_at"
// @Param        order       query  string  false  "asc | desc"
// @Param        minStock    query  string  false  "below | above"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Security     BearerAuth
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ListProductsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos", Fields: errs})
	}
	out, err := h.uc.List(GetUserID(c), in)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: errs})
	}
	out, err := h.uc.Update(c.Params("id"), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio y stock mínimo deben ser >= 0"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o categoría no encontrados"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SKU_EXISTS", Message: "ya existe un producto con ese SKU"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary      Subir imagen del producto
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID del producto"
// @Param        image  formData  file    true  "imagen (jpg, jpeg, png, webp; máx 5 MB)"
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id}/image [post]
func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo image requerido"})
	}
	if file.Size > maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la imagen supera 5 MB"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE_TYPE", Message: "formato no soportado"})
	}

	// Nombre aleatorio: el nombre original del cliente nunca toca el disco.
	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(h.uploads.Dir, name)); err != nil {
		return internalError(c, fmt.Errorf("guardar imagen: %w", err))
	}

	imageURL := h.uploads.PublicURL + "/" + name
	if err := h.uc.SetImage(c.Params("id"), GetUserID(c), imageURL); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: imageURL})
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Elimina el producto y todos sus movimientos en una sola transacción.
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}
