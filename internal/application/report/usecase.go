// Package report implementa los reportes de inventario: historial de
// movimientos (kardex), stock bajo y exportación a PDF.
package report

import (
	"context"
	"time"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/catalog"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
)

// KardexPDFGenerator genera el PDF del kardex de un producto.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, product *entity.Product, movements []*entity.Movement) ([]byte, error)
}

// ReportUseCase consultas de solo lectura sobre productos y movimientos.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	pdf          KardexPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository, pdf KardexPDFGenerator) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, movementRepo: movementRepo, pdf: pdf}
}

// LowStock lista los productos por debajo del umbral único de stock bajo.
func (uc *ReportUseCase) LowStock(companyID string) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock(companyID, catalog.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// MovementHistory lista movimientos de la empresa, opcionalmente filtrados por
// producto y rango de fechas.
func (uc *ReportUseCase) MovementHistory(companyID, productID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	var list []*entity.Movement
	var err error
	if productID != "" {
		list, err = uc.movementRepo.ListByProduct(companyID, productID, from, to, limit, offset)
	} else {
		list, err = uc.movementRepo.ListByCompany(companyID, from, to, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// KardexPDF genera el PDF con el historial de movimientos de un producto.
func (uc *ReportUseCase) KardexPDF(ctx context.Context, companyID, productID string, from, to *time.Time) ([]byte, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	// Kardex completo: hasta 1000 movimientos por producto alcanzan de sobra
	// para el historial de un SKU de retail.
	movements, err := uc.movementRepo.ListByProduct(companyID, productID, from, to, 1000, 0)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateKardexPDF(ctx, product, movements)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		SKU:              m.SKU,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Date:             m.Date,
		Location:         m.Location,
		Reason:           m.Reason,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Reference:   p.Reference,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
		Location:    p.Location,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
