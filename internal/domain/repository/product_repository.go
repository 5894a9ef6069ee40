package repository

import "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock es un update condicional sobre Revision: si la fila cambió desde
// la lectura, retorna domain.ErrConflict para que el caller reintente con un
// snapshot fresco.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, quantity int64, status string, revision int64) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	ListAllByCompany(companyID string) ([]*entity.Product, error)
	ListLowStock(companyID string, threshold int64) ([]*entity.Product, error)
	Delete(id string) error
}
