package repository

import "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (insert-only).
type CategoryRepository interface {
	Create(category *entity.Category) error
	ListByCompany(companyID string) ([]*entity.Category, error)
}
