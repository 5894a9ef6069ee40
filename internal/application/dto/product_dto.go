package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Si SKU viene vacío se genera automáticamente desde marca + categoría.
type CreateProductRequest struct {
	SKU         string          `json:"sku,omitempty"`
	Reference   string          `json:"reference"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Brand       string          `json:"brand" validate:"required"`
	BrandCode   string          `json:"brand_code,omitempty" validate:"omitempty,len=3"`
	Location    string          `json:"location"`
	Quantity    int64           `json:"quantity" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
// Quantity y Status no se editan aquí: se manejan vía movimientos.
type UpdateProductRequest struct {
	Reference   *string          `json:"reference,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse respuesta estándar de producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Location    string          `json:"location"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
