package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/auth"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/inventory"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/report"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/usecase"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CatalogUC   *usecase.CatalogUseCase
	BatchUC     *inventory.ApplyBatchUseCase
	SalesUC     *inventory.SalesUseCase
	PurchasesUC *inventory.PurchasesUseCase
	ReportUC    *report.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Escrituras de inventario: admin y bodeguero. Ventas: también vendedor.
	stockWriter := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	seller := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", stockWriter, productHandler.Create)
	products.Post("/generate-sku", stockWriter, productHandler.GenerateSKU)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", stockWriter, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Brands y categories (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	brands := protected.Group("/brands")
	brands.Post("/", stockWriter, catalogHandler.CreateBrand)
	brands.Get("/", catalogHandler.ListBrands)
	categories := protected.Group("/categories")
	categories.Post("/", stockWriter, catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)

	// Inventory movements y reportes (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.BatchUC, deps.ReportUC)
	invGroup.Post("/movements", stockWriter, inventoryHandler.RegisterMovements)
	invGroup.Get("/movements", inventoryHandler.MovementHistory)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/kardex/:id/pdf", inventoryHandler.KardexPDF)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	sales.Post("/", seller, saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Post("/:id/void", stockWriter, saleHandler.Void)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	purchases.Post("/", stockWriter, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
}
