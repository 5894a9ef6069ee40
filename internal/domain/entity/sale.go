package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

// Sale representa una venta POS. Anular una venta no la borra: se marca como
// voided y el stock se repone con movimientos Entrada compensatorios.
type Sale struct {
	ID          string
	CompanyID   string
	PaymentType string // efectivo, tarjeta, transferencia...
	Total       decimal.Decimal
	Status      string // completed, voided
	Items       []SaleItem
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// SaleItem línea de detalle de una venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
