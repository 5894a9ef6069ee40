// Package ledger implementa la aplicación en memoria de lotes de movimientos
// de stock sobre un snapshot de productos (servicio de dominio puro).
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/catalog"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

// Entry es una operación de cambio de cantidad dentro de un lote.
// Los callers de una sola operación (movimiento manual) envían un lote de tamaño 1.
type Entry struct {
	ProductID string
	Type      string // Entrada, Salida, Ajuste
	Quantity  int64  // delta (Entrada/Salida) o valor absoluto (Ajuste)
	Location  string // vacío = conservar la ubicación del producto
	Reason    string
}

// Estado por entrada del lote. El skip silencioso del sistema original se
// reemplaza por un resultado explícito que el caller puede exponer.
const (
	EntryApplied  = "applied"
	EntryNotFound = "not_found"
	EntryInvalid  = "invalid"
)

// EntryResult describe qué pasó con una entrada del lote.
type EntryResult struct {
	ProductID string
	Status    string           // applied, not_found, invalid
	Movement  *entity.Movement // nil si la entrada no se aplicó
}

// Result es la salida de Apply: el snapshot actualizado, los productos tocados
// (en orden de primer toque, listos para persistir con update condicional),
// los movimientos generados y el detalle por entrada.
type Result struct {
	Snapshot  []*entity.Product
	Updated   []*entity.Product
	Movements []*entity.Movement
	Entries   []EntryResult
}

// Apply aplica las entradas del lote en orden de envío sobre una copia de
// trabajo del snapshot. Cada entrada ve los efectos de las anteriores del mismo
// lote (dependencia secuencial intencional: varias líneas contra el mismo
// producto en una compra). No reordena, no paraleliza y no hace rollback: la
// atomicidad frente al almacenamiento es responsabilidad del caller.
func Apply(products []*entity.Product, batch []Entry, now time.Time, companyID, createdBy string) *Result {
	// Copia de trabajo: el snapshot del caller no se muta.
	working := make([]*entity.Product, len(products))
	byID := make(map[string]*entity.Product, len(products))
	for i, p := range products {
		cp := *p
		working[i] = &cp
		byID[cp.ID] = working[i]
	}

	res := &Result{Snapshot: working}
	touched := make(map[string]bool, len(batch))

	for _, e := range batch {
		product, ok := byID[e.ProductID]
		if !ok {
			res.Entries = append(res.Entries, EntryResult{ProductID: e.ProductID, Status: EntryNotFound})
			continue
		}

		var newQuantity int64
		switch e.Type {
		case entity.MovementTypeEntrada:
			newQuantity = product.Quantity + e.Quantity
		case entity.MovementTypeSalida:
			// Sin piso en cero: puede quedar negativo.
			newQuantity = product.Quantity - e.Quantity
		case entity.MovementTypeAjuste:
			// Absoluto: ignora la cantidad previa.
			newQuantity = e.Quantity
		default:
			res.Entries = append(res.Entries, EntryResult{ProductID: e.ProductID, Status: EntryInvalid})
			continue
		}
		if e.Quantity < 0 {
			res.Entries = append(res.Entries, EntryResult{ProductID: e.ProductID, Status: EntryInvalid})
			continue
		}

		location := e.Location
		if location == "" {
			location = product.Location
		}
		mov := &entity.Movement{
			ID:               uuid.New().String(),
			CompanyID:        companyID,
			ProductID:        product.ID,
			ProductName:      product.Description,
			SKU:              product.SKU,
			Type:             e.Type,
			Quantity:         e.Quantity,
			PreviousQuantity: product.Quantity,
			NewQuantity:      newQuantity,
			Date:             now,
			Location:         location,
			Reason:           e.Reason,
			CreatedBy:        createdBy,
		}

		product.Quantity = newQuantity
		product.Status = catalog.StatusFor(newQuantity)
		product.UpdatedAt = now

		if !touched[product.ID] {
			touched[product.ID] = true
			res.Updated = append(res.Updated, product)
		}
		res.Movements = append(res.Movements, mov)
		res.Entries = append(res.Entries, EntryResult{ProductID: product.ID, Status: EntryApplied, Movement: mov})
	}

	return res
}

// AllApplied indica si todas las entradas del lote se aplicaron.
func (r *Result) AllApplied() bool {
	for _, e := range r.Entries {
		if e.Status != EntryApplied {
			return false
		}
	}
	return true
}
