package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/ledger"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/infrastructure/metrics"
)

// PurchasesUseCase registra compras a proveedor: una Entrada por línea más el
// registro de la compra, todo en la misma transacción.
type PurchasesUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	invalidator  SnapshotInvalidator
}

// NewPurchasesUseCase construye el caso de uso. invalidator puede ser nil.
func NewPurchasesUseCase(txRunner TxRunner, productRepo repository.ProductRepository, purchaseRepo repository.PurchaseRepository, invalidator SnapshotInvalidator) *PurchasesUseCase {
	return &PurchasesUseCase{txRunner: txRunner, productRepo: productRepo, purchaseRepo: purchaseRepo, invalidator: invalidator}
}

// CreatePurchase aplica las Entradas del lote y persiste la compra. Varias
// líneas contra el mismo producto se acumulan en orden dentro del lote.
func (uc *PurchasesUseCase) CreatePurchase(ctx context.Context, companyID, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	snapshot, err := uc.productRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(snapshot))
	for _, p := range snapshot {
		known[p.ID] = true
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Provider:      in.Provider,
		InvoiceNumber: in.InvoiceNumber,
		Total:         decimal.Zero,
		CreatedAt:     now,
		CreatedBy:     userID,
	}

	entries := make([]ledger.Entry, 0, len(in.Items))
	for _, item := range in.Items {
		if !known[item.ProductID] {
			return nil, domain.ErrNotFound
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		subtotal := item.UnitCost.Mul(decimal.NewFromInt(item.Quantity))
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitCost:   item.UnitCost,
			Subtotal:   subtotal,
		})
		purchase.Total = purchase.Total.Add(subtotal)
		entries = append(entries, ledger.Entry{
			ProductID: item.ProductID,
			Type:      entity.MovementTypeEntrada,
			Quantity:  item.Quantity,
			Reason:    fmt.Sprintf("Purchase: %s - Invoice #%s", in.Provider, in.InvoiceNumber),
		})
	}

	res := ledger.Apply(snapshot, entries, now, companyID, userID)
	if !res.AllApplied() {
		return nil, domain.ErrInvalidInput
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
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
		return purchaseRepo.Create(purchase)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.StockConflicts.Inc()
		}
		return nil, err
	}

	for _, m := range res.Movements {
		metrics.MovementsApplied.WithLabelValues(m.Type).Inc()
	}
	metrics.PurchasesRegistered.Inc()
	uc.invalidate(ctx, companyID)
	return toPurchaseResponse(purchase), nil
}

// GetPurchase obtiene una compra por ID validando el tenant.
func (uc *PurchasesUseCase) GetPurchase(companyID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, nil
	}
	if purchase.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toPurchaseResponse(purchase), nil
}

// ListPurchases lista compras por empresa con paginación.
func (uc *PurchasesUseCase) ListPurchases(companyID string, limit, offset int) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *PurchasesUseCase) invalidate(ctx context.Context, companyID string) {
	if uc.invalidator != nil {
		_ = uc.invalidator.Invalidate(ctx, companyID)
	}
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.PurchaseResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		Provider:      p.Provider,
		InvoiceNumber: p.InvoiceNumber,
		Total:         p.Total,
		Items:         items,
		CreatedAt:     p.CreatedAt,
	}
}
