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

// SalesUseCase registra y anula ventas POS. Cada línea de venta genera una
// Salida en el ledger; anular genera Entradas compensatorias sin tocar el
// historial ya escrito.
type SalesUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	invalidator SnapshotInvalidator
}

// NewSalesUseCase construye el caso de uso. invalidator puede ser nil.
func NewSalesUseCase(txRunner TxRunner, productRepo repository.ProductRepository, saleRepo repository.SaleRepository, invalidator SnapshotInvalidator) *SalesUseCase {
	return &SalesUseCase{txRunner: txRunner, productRepo: productRepo, saleRepo: saleRepo, invalidator: invalidator}
}

// CreateSale aplica una Salida por línea y persiste la venta en la misma
// transacción. A diferencia del lote genérico, una venta es todo-o-nada:
// cualquier producto inexistente rechaza la venta completa.
func (uc *SalesUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	snapshot, err := uc.productRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		PaymentType: in.PaymentType,
		Total:       decimal.Zero,
		Status:      entity.SaleStatusCompleted,
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	entries := make([]ledger.Entry, 0, len(in.Items))
	for _, item := range in.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		description := item.Description
		if description == "" {
			description = product.Description
		}
		unitPrice := product.Price
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}
		subtotal := unitPrice.Mul(decimal.NewFromInt(item.Quantity))
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   item.ProductID,
			Description: description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
		sale.Total = sale.Total.Add(subtotal)
		entries = append(entries, ledger.Entry{
			ProductID: item.ProductID,
			Type:      entity.MovementTypeSalida,
			Quantity:  item.Quantity,
			Reason:    fmt.Sprintf("Sale: %s - %s", description, in.PaymentType),
		})
	}

	res := ledger.Apply(snapshot, entries, now, companyID, userID)
	if !res.AllApplied() {
		return nil, domain.ErrInvalidInput
	}

	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
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
		return saleRepo.Create(sale)
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
	metrics.SalesRegistered.Inc()
	uc.invalidate(ctx, companyID)
	return toSaleResponse(sale), nil
}

// VoidSale anula una venta: marca la venta como voided y repone el stock con
// movimientos Entrada compensatorios. El historial de movimientos de la venta
// original no se toca.
func (uc *SalesUseCase) VoidSale(ctx context.Context, companyID, userID, saleID string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if sale.Status == entity.SaleStatusVoided {
		return domain.ErrSaleVoided
	}

	snapshot, err := uc.productRepo.ListAllByCompany(companyID)
	if err != nil {
		return err
	}

	entries := make([]ledger.Entry, 0, len(sale.Items))
	for _, item := range sale.Items {
		entries = append(entries, ledger.Entry{
			ProductID: item.ProductID,
			Type:      entity.MovementTypeEntrada,
			Quantity:  item.Quantity,
			Reason:    fmt.Sprintf("Sale reversal: %s - %s", item.Description, sale.PaymentType),
		})
	}

	res := ledger.Apply(snapshot, entries, time.Now(), companyID, userID)
	if !res.AllApplied() {
		// La anulación es todo-o-nada: si un producto vendido fue eliminado,
		// reponer solo los sobrevivientes dejaría la venta a medias.
		return fmt.Errorf("anular venta %s: producto vendido ya no existe: %w", sale.ID, domain.ErrNotFound)
	}

	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
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
		return saleRepo.MarkVoided(sale.ID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.StockConflicts.Inc()
		}
		return err
	}

	for _, m := range res.Movements {
		metrics.MovementsApplied.WithLabelValues(m.Type).Inc()
	}
	metrics.SalesVoided.Inc()
	uc.invalidate(ctx, companyID)
	return nil
}

// GetSale obtiene una venta por ID validando el tenant.
func (uc *SalesUseCase) GetSale(companyID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas por empresa con paginación.
func (uc *SalesUseCase) ListSales(companyID string, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *SalesUseCase) invalidate(ctx context.Context, companyID string) {
	if uc.invalidator != nil {
		_ = uc.invalidator.Invalidate(ctx, companyID)
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		PaymentType: s.PaymentType,
		Total:       s.Total,
		Status:      s.Status,
		Items:       items,
		CreatedAt:   s.CreatedAt,
	}
}
