package entity

import "time"

// Brand representa una marca con su código corto para composición de SKU.
// El código queda congelado en los SKUs ya emitidos: cambiarlo no reescribe
// códigos existentes.
type Brand struct {
	ID        string
	CompanyID string
	Name      string // único por empresa (comparación sin mayúsculas ni tildes)
	Code      string // 3 caracteres alfanuméricos en mayúscula
	CreatedAt time.Time
}
