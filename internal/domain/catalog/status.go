package catalog

import "github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"

// LowStockThreshold es el único umbral de stock bajo del sistema: aplica igual
// al estado del producto, al reporte de stock bajo y al dashboard.
const LowStockThreshold = 10

// StatusFor recalcula el estado derivado de un producto según su cantidad.
// Cantidades negativas (Salida sin piso en cero) se reportan como Out of Stock.
func StatusFor(quantity int64) string {
	switch {
	case quantity <= 0:
		return entity.StatusOutOfStock
	case quantity < LowStockThreshold:
		return entity.StatusLowStock
	default:
		return entity.StatusInStock
	}
}
