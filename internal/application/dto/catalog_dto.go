package dto

import "time"

// CreateBrandRequest body para POST /api/brands.
// Code es opcional: vacío = derivar de los primeros 3 caracteres del nombre.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code,omitempty" validate:"omitempty,len=3,alphanum"`
}

// BrandResponse respuesta de marca.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categories.
// El código se asigna automáticamente (siguiente secuencial a 3 dígitos).
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryResponse respuesta de categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateSKURequest body para POST /api/products/generate-sku (previsualización).
type GenerateSKURequest struct {
	Brand    string `json:"brand" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// GenerateSKUResponse SKU generado sin persistir nada.
type GenerateSKUResponse struct {
	SKU string `json:"sku"`
}
