package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor que ingresa mercancía al stock.
type Purchase struct {
	ID            string
	CompanyID     string
	Provider      string
	InvoiceNumber string
	Total         decimal.Decimal
	Items         []PurchaseItem
	CreatedAt     time.Time
	CreatedBy     string // UserID
}

// PurchaseItem línea de detalle de una compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int64
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}
