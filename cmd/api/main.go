package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Almacen-api/docs"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	infragoogle "github.com/jhoicas/Almacen-api/internal/infrastructure/google"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/mail"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Mailer y cliente de Google solo si hay credenciales; con nil las rutas
	// correspondientes responden que la función no está habilitada.
	var mailer auth.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPSender(cfg.SMTP)
	}
	var googleClient auth.GoogleExchanger
	if cfg.Google.ClientID != "" {
		googleClient = infragoogle.NewOAuthClient(cfg.Google)
	}

	authUC := auth.NewAuthUseCase(userRepo, mailer, googleClient, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.FrontendURL)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, movementRepo, txRunner)
	stockUC := stock.NewStockUseCase(movementRepo, productRepo)

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("crear directorio de uploads")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacen API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		StockUC:    stockUC,
		Uploads:    cfg.Uploads,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
