package repository

import "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus items.
// No hay Delete: anular es MarkVoided más movimientos compensatorios.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
	MarkVoided(id string) error
}
