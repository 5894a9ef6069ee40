package repository

import "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase y sus items.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Purchase, error)
}
