package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	StockUC    *stock.StockUseCase
	Uploads    config.UploadsConfig
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.GoogleLogin)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Imágenes subidas (público, solo lectura)
	app.Static(deps.Uploads.PublicURL, deps.Uploads.Dir)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Uploads)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/image", productHandler.UploadImage)
	products.Delete("/:id", productHandler.Delete)

	// Stock: libro de movimientos y stock actual derivado (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Delete("/movements/:id", stockHandler.DeleteMovement)
	stockGroup.Get("/products/:productId", stockHandler.CurrentStock)
}

// internalError registra el error y responde 500 sin filtrar detalles internos.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
