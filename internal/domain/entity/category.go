package entity

import "time"

// Category representa una categoría de productos con su código numérico.
type Category struct {
	ID        string
	CompanyID string
	Name      string // único por empresa (comparación sin mayúsculas ni tildes)
	Code      string // 3 dígitos con ceros a la izquierda ("001", "012")
	CreatedAt time.Time
}
