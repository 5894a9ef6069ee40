package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/auth"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/inventory"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/report"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/usecase"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/infrastructure/cache"
	infrapdf "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/infrastructure/pdf"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/interfaces/http"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/pkg/config"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de snapshots opcional: sin REDIS_ADDR la app va directo a la DB.
	var productCache *cache.ProductCache
	if cfg.Redis.Addr != "" {
		productCache, err = cache.NewProductCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer productCache.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de productos habilitado")
	}

	// nil tipado: pasar *ProductCache nil directo dejaría la interfaz no-nil
	var snapshotCache usecase.ProductCache
	var invalidator inventory.SnapshotInvalidator
	if productCache != nil {
		snapshotCache = productCache
		invalidator = productCache
	}

	batchUC := inventory.NewApplyBatchUseCase(txRunner, productRepo, invalidator)
	salesUC := inventory.NewSalesUseCase(txRunner, productRepo, saleRepo, invalidator)
	purchasesUC := inventory.NewPurchasesUseCase(txRunner, productRepo, purchaseRepo, invalidator)
	productUC := usecase.NewProductUseCase(productRepo, brandRepo, categoryRepo, snapshotCache)
	catalogUC := usecase.NewCatalogUseCase(brandRepo, categoryRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := report.NewReportUseCase(productRepo, movementRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Inventario Retail API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CatalogUC:   catalogUC,
		BatchUC:     batchUC,
		SalesUC:     salesUC,
		PurchasesUC: purchasesUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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
