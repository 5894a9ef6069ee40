package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/ledger"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/infrastructure/metrics"
)

// ApplyBatchUseCase aplica lotes de movimientos: carga el snapshot de productos
// de la empresa, corre el ledger en memoria y persiste productos + movimientos
// en una transacción. La escritura de cada producto es un update condicional
// sobre Revision; una revisión obsoleta aborta la transacción con ErrConflict
// para que el caller reintente contra un snapshot fresco.
type ApplyBatchUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	invalidator SnapshotInvalidator
}

// NewApplyBatchUseCase construye el caso de uso. invalidator puede ser nil.
func NewApplyBatchUseCase(txRunner TxRunner, productRepo repository.ProductRepository, invalidator SnapshotInvalidator) *ApplyBatchUseCase {
	return &ApplyBatchUseCase{txRunner: txRunner, productRepo: productRepo, invalidator: invalidator}
}

// Apply ejecuta un lote de entradas en orden de envío y devuelve el resultado
// por entrada. Entradas not_found/invalid no abortan el lote: se reportan y
// las demás se aplican (el caller decide cómo exponer el fallo parcial).
func (uc *ApplyBatchUseCase) Apply(ctx context.Context, companyID, userID string, entries []ledger.Entry) (*ledger.Result, error) {
	if len(entries) == 0 {
		return nil, domain.ErrInvalidInput
	}

	snapshot, err := uc.productRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}

	res := ledger.Apply(snapshot, entries, time.Now(), companyID, userID)

	if err := uc.persist(ctx, res); err != nil {
		return nil, err
	}

	for _, m := range res.Movements {
		metrics.MovementsApplied.WithLabelValues(m.Type).Inc()
	}
	uc.invalidate(ctx, companyID)
	return res, nil
}

// persist escribe el resultado del ledger en una sola transacción.
func (uc *ApplyBatchUseCase) persist(ctx context.Context, res *ledger.Result) error {
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		for _, p := range res.Updated {
			if err := productRepo.UpdateStock(p.ID, p.Quantity, p.Status, p.Revision); err != nil {
				return err
			}
		}
		for _, m := range res.Movements {
			if err := movementRepo.Create(m); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, domain.ErrConflict) {
		metrics.StockConflicts.Inc()
	}
	return err
}

func (uc *ApplyBatchUseCase) invalidate(ctx context.Context, companyID string) {
	if uc.invalidator != nil {
		_ = uc.invalidator.Invalidate(ctx, companyID)
	}
}

// ApplyFromRequest adapta el request HTTP al caso de uso Apply.
func (uc *ApplyBatchUseCase) ApplyFromRequest(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (*ledger.Result, error) {
	entries := make([]ledger.Entry, 0, len(in.Entries))
	for _, e := range in.Entries {
		entries = append(entries, ledger.Entry{
			ProductID: e.ProductID,
			Type:      e.Type,
			Quantity:  e.Quantity,
			Location:  e.Location,
			Reason:    e.Reason,
		})
	}
	return uc.Apply(ctx, companyID, userID, entries)
}
