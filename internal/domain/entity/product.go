package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un producto según su cantidad en stock.
// Deben preservarse byte a byte: el frontend y los datos históricos los comparan como strings.
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// Product representa un producto del inventario identificado por su SKU.
// Quantity y Status se manejan vía movimientos (ledger); Revision es el token
// de concurrencia optimista para el update condicional en la persistencia.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Reference   string
	Description string
	Category    string // nombre de la categoría (no ID, igual que los datos almacenados)
	Brand       string // nombre de la marca
	Location    string
	Quantity    int64
	Price       decimal.Decimal
	Status      string // In Stock, Low Stock, Out of Stock (derivado)
	Revision    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
