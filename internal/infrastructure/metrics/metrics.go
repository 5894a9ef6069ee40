// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsApplied cuenta movimientos de stock aplicados por tipo.
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_applied_total",
		Help: "Movimientos de stock aplicados, por tipo (Entrada, Salida, Ajuste)",
	}, []string{"type"})

	// StockConflicts cuenta updates condicionales rechazados por revisión obsoleta.
	StockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_stock_conflicts_total",
		Help: "Escrituras de stock rechazadas por conflicto de concurrencia optimista",
	})

	// SalesRegistered cuenta ventas registradas.
	SalesRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_registered_total",
		Help: "Ventas registradas",
	})

	// SalesVoided cuenta ventas anuladas (reversas compensatorias).
	SalesVoided = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_voided_total",
		Help: "Ventas anuladas con reversa compensatoria",
	})

	// PurchasesRegistered cuenta compras registradas.
	PurchasesRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_purchases_registered_total",
		Help: "Compras registradas",
	})
)
