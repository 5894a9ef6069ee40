package inventory

import (
	"context"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que los updates condicionales de
// stock y los inserts de movimientos se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error

	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error) error

	RunPurchase(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// SnapshotInvalidator invalida el snapshot cacheado de productos de una
// empresa después de una escritura de stock. Implementación nil-safe en el
// caso de uso: sin caché configurado no se invalida nada.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}
