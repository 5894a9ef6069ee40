package repository

import (
	"time"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para Movement.
// Solo inserta: los movimientos son inmutables y no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByCompany(companyID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
