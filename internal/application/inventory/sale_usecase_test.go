package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/inventory"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

func buildSalesUseCase(products ...*entity.Product) (*inventory.SalesUseCase, *fakeProductRepo, *fakeMovementRepo, *fakeSaleRepo) {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	saleRepo := newFakeSaleRepo()
	runner := &fakeTxRunner{productRepo: productRepo, movementRepo: movementRepo, saleRepo: saleRepo}
	return inventory.NewSalesUseCase(runner, productRepo, saleRepo, nil), productRepo, movementRepo, saleRepo
}

func pricedProduct(id string, quantity int64, price string) *entity.Product {
	p := testProduct(id, quantity)
	p.Price = decimal.RequireFromString(price)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYRegistraVenta(t *testing.T) {
	uc, productRepo, movementRepo, saleRepo := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	res, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	// Stock descontado y revisión avanzada.
	stored := productRepo.products["p1"]
	assert.Equal(t, int64(8), stored.Quantity)
	assert.Equal(t, int64(4), stored.Revision)

	// Total = precio del producto × cantidad (fallback al precio de lista).
	assert.True(t, res.Total.Equal(decimal.RequireFromString("50000")),
		"total esperado 50000, obtenido %s", res.Total)
	assert.Equal(t, entity.SaleStatusCompleted, res.Status)

	// El movimiento es una Salida con el motivo de venta.
	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, entity.MovementTypeSalida, mov.Type)
	assert.Equal(t, "Sale: Audífonos inalámbricos - efectivo", mov.Reason)
	assert.Equal(t, int64(10), mov.PreviousQuantity)
	assert.Equal(t, int64(8), mov.NewQuantity)

	// La venta quedó persistida con su línea.
	stored2 := saleRepo.sales[res.ID]
	require.NotNil(t, stored2)
	require.Len(t, stored2.Items, 1)
	assert.Equal(t, "Audífonos inalámbricos", stored2.Items[0].Description,
		"sin descripción en la línea se usa la del producto")
}

func TestCreateSale_PrecioExplicitoGanaAlDeLista(t *testing.T) {
	uc, _, _, _ := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	price := decimal.RequireFromString("19990")
	res, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "tarjeta",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3, UnitPrice: &price, Description: "Promo audífonos"},
		},
	})
	require.NoError(t, err)

	assert.True(t, res.Total.Equal(decimal.RequireFromString("59970")))
	assert.Equal(t, "Promo audífonos", res.Items[0].Description)
}

func TestCreateSale_ProductoInexistenteRechazaLaVenta(t *testing.T) {
	uc, productRepo, movementRepo, _ := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	_, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "fantasma", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la venta es todo-o-nada")
	assert.Equal(t, int64(10), productRepo.products["p1"].Quantity, "nada debe descontarse")
	assert.Empty(t, movementRepo.movements)
}

func TestCreateSale_CantidadInvalidaEsError(t *testing.T) {
	uc, _, _, _ := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	_, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas es inválida")
}

// ──────────────────────────────────────────────────────────────────────────────
// VoidSale
// ──────────────────────────────────────────────────────────────────────────────

func TestVoidSale_ReponeStockConEntradasCompensatorias(t *testing.T) {
	uc, productRepo, movementRepo, saleRepo := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	res, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), productRepo.products["p1"].Quantity)

	err = uc.VoidSale(context.Background(), testCompanyID, testUserID, res.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusVoided, saleRepo.sales[res.ID].Status)
	assert.Equal(t, int64(10), productRepo.products["p1"].Quantity, "el stock vuelve a su nivel previo")

	// Salida original + Entrada compensatoria: el historial no se reescribe.
	require.Len(t, movementRepo.movements, 2)
	reversal := movementRepo.movements[1]
	assert.Equal(t, entity.MovementTypeEntrada, reversal.Type)
	assert.Equal(t, "Sale reversal: Audífonos inalámbricos - efectivo", reversal.Reason)
	assert.Equal(t, int64(6), reversal.PreviousQuantity)
	assert.Equal(t, int64(10), reversal.NewQuantity)
}

func TestVoidSale_ProductoEliminadoAbortaLaAnulacion(t *testing.T) {
	p2 := pricedProduct("p2", 8, "5000")
	p2.SKU = "SON001-002"
	uc, productRepo, movementRepo, saleRepo := buildSalesUseCase(pricedProduct("p1", 10, "25000"), p2)

	res, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Un producto vendido se elimina antes de anular la venta.
	require.NoError(t, productRepo.Delete("p2"))

	err = uc.VoidSale(context.Background(), testCompanyID, testUserID, res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "anular con un producto eliminado debe fallar, no reponer a medias")

	// Nada cambió: la venta sigue completada y el sobreviviente no se repuso.
	assert.Equal(t, entity.SaleStatusCompleted, saleRepo.sales[res.ID].Status)
	assert.Equal(t, int64(8), productRepo.products["p1"].Quantity)
	assert.Len(t, movementRepo.movements, 2, "solo las Salidas originales, sin reversas parciales")
}

func TestVoidSale_DobleAnulacionEsError(t *testing.T) {
	uc, _, _, _ := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	res, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.VoidSale(context.Background(), testCompanyID, testUserID, res.ID))
	err = uc.VoidSale(context.Background(), testCompanyID, testUserID, res.ID)
	assert.ErrorIs(t, err, domain.ErrSaleVoided)
}

func TestVoidSale_OtraEmpresaEsForbidden(t *testing.T) {
	uc, _, _, saleRepo := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	res, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	err = uc.VoidSale(context.Background(), "otra-empresa", testUserID, res.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.SaleStatusCompleted, saleRepo.sales[res.ID].Status)
}

func TestVoidSale_VentaInexistenteEsNotFound(t *testing.T) {
	uc, _, _, _ := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	err := uc.VoidSale(context.Background(), testCompanyID, testUserID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_ValidaTenant(t *testing.T) {
	uc, _, _, _ := buildSalesUseCase(pricedProduct("p1", 10, "25000"))

	res, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentType: "efectivo",
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := uc.GetSale(testCompanyID, res.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, res.ID, got.ID)

	_, err = uc.GetSale("otra-empresa", res.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
