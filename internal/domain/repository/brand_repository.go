package repository

import "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"

// BrandRepository define el puerto de persistencia para Brand (insert-only).
type BrandRepository interface {
	Create(brand *entity.Brand) error
	ListByCompany(companyID string) ([]*entity.Brand, error)
}
