package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/ledger"
)

const (
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testUserID    = "00000000-0000-0000-0000-000000000001"
)

var now = time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

func product(id string, quantity int64) *entity.Product {
	return &entity.Product{
		ID:          id,
		CompanyID:   testCompanyID,
		SKU:         "SON001-001",
		Description: "Audífonos inalámbricos",
		Location:    "Bodega A",
		Quantity:    quantity,
		Status:      "In Stock",
	}
}

func apply(products []*entity.Product, batch []ledger.Entry) *ledger.Result {
	return ledger.Apply(products, batch, now, testCompanyID, testUserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipos de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaSuma(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 5)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 3},
	})

	require.Len(t, res.Movements, 1)
	mov := res.Movements[0]
	assert.Equal(t, int64(5), mov.PreviousQuantity, "la cantidad previa se captura antes de mutar")
	assert.Equal(t, int64(8), mov.NewQuantity)
	assert.Equal(t, int64(8), res.Updated[0].Quantity)
	assert.True(t, res.AllApplied())
}

func TestApply_SalidaRestaSinPisoEnCero(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 5)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 8},
	})

	require.Len(t, res.Movements, 1)
	assert.Equal(t, int64(-3), res.Movements[0].NewQuantity, "Salida puede dejar stock negativo")
	assert.Equal(t, entity.StatusOutOfStock, res.Updated[0].Status)
}

func TestApply_SalidaHastaCero(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 5)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 5},
	})

	assert.Equal(t, int64(0), res.Updated[0].Quantity)
	assert.Equal(t, entity.StatusOutOfStock, res.Updated[0].Status)
}

func TestApply_AjusteEsAbsoluto(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 50)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeAjuste, Quantity: 7},
	})

	require.Len(t, res.Movements, 1)
	mov := res.Movements[0]
	assert.Equal(t, int64(50), mov.PreviousQuantity)
	assert.Equal(t, int64(7), mov.NewQuantity, "Ajuste fija la cantidad, no suma")
	assert.Equal(t, int64(7), mov.Quantity, "en Ajuste, Quantity registra el valor absoluto fijado")
	assert.Equal(t, entity.StatusLowStock, res.Updated[0].Status)
}

func TestApply_AjusteSinCambioGeneraMovimiento(t *testing.T) {
	// Ajuste a la misma cantidad: delta cero pero el movimiento queda registrado.
	res := apply([]*entity.Product{product("p1", 10)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeAjuste, Quantity: 10},
	})

	require.Len(t, res.Movements, 1)
	assert.Equal(t, int64(10), res.Movements[0].PreviousQuantity)
	assert.Equal(t, int64(10), res.Movements[0].NewQuantity)
	assert.True(t, res.AllApplied())
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_LoteEncadenaSobreElMismoProducto(t *testing.T) {
	// 10 → +5 → -2 = 13; cada entrada ve el efecto de la anterior.
	res := apply([]*entity.Product{product("p1", 10)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 5},
		{ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 2},
	})

	require.Len(t, res.Movements, 2)
	assert.Equal(t, int64(10), res.Movements[0].PreviousQuantity)
	assert.Equal(t, int64(15), res.Movements[0].NewQuantity)
	assert.Equal(t, int64(15), res.Movements[1].PreviousQuantity)
	assert.Equal(t, int64(13), res.Movements[1].NewQuantity)

	// El producto tocado dos veces aparece una sola vez en Updated.
	require.Len(t, res.Updated, 1)
	assert.Equal(t, int64(13), res.Updated[0].Quantity)
}

func TestApply_ProductoInexistenteNoAbortaElLote(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 10)}, []ledger.Entry{
		{ProductID: "fantasma", Type: entity.MovementTypeEntrada, Quantity: 5},
		{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 5},
	})

	require.Len(t, res.Entries, 2)
	assert.Equal(t, ledger.EntryNotFound, res.Entries[0].Status)
	assert.Nil(t, res.Entries[0].Movement)
	assert.Equal(t, ledger.EntryApplied, res.Entries[1].Status)
	assert.False(t, res.AllApplied())

	// Solo la entrada válida generó movimiento.
	require.Len(t, res.Movements, 1)
	assert.Equal(t, int64(15), res.Updated[0].Quantity)
}

func TestApply_TipoDesconocidoEsInvalid(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 10)}, []ledger.Entry{
		{ProductID: "p1", Type: "Traslado", Quantity: 5},
	})

	require.Len(t, res.Entries, 1)
	assert.Equal(t, ledger.EntryInvalid, res.Entries[0].Status)
	assert.Empty(t, res.Movements)
	assert.Empty(t, res.Updated)
}

func TestApply_CantidadNegativaEsInvalid(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 10)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: -5},
	})

	assert.Equal(t, ledger.EntryInvalid, res.Entries[0].Status)
	assert.Empty(t, res.Movements)
}

func TestApply_NoMutaElSnapshotDelCaller(t *testing.T) {
	original := product("p1", 10)
	apply([]*entity.Product{original}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 5},
	})

	assert.Equal(t, int64(10), original.Quantity, "Apply trabaja sobre una copia")
}

func TestApply_MovimientoCapturaContexto(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 10)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 1, Reason: "Sale: Audífonos inalámbricos - efectivo"},
	})

	mov := res.Movements[0]
	assert.Equal(t, "Audífonos inalámbricos", mov.ProductName)
	assert.Equal(t, "SON001-001", mov.SKU)
	assert.Equal(t, "Bodega A", mov.Location, "sin ubicación en la entrada se usa la del producto")
	assert.Equal(t, "Sale: Audífonos inalámbricos - efectivo", mov.Reason)
	assert.Equal(t, testUserID, mov.CreatedBy)
	assert.Equal(t, now, mov.Date)
}

func TestApply_UbicacionExplicitaGanaALaDelProducto(t *testing.T) {
	res := apply([]*entity.Product{product("p1", 10)}, []ledger.Entry{
		{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 1, Location: "Bodega B"},
	})

	assert.Equal(t, "Bodega B", res.Movements[0].Location)
}
