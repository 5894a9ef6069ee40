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

func buildPurchasesUseCase(products ...*entity.Product) (*inventory.PurchasesUseCase, *fakeProductRepo, *fakeMovementRepo, *fakePurchaseRepo) {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	purchaseRepo := newFakePurchaseRepo()
	runner := &fakeTxRunner{productRepo: productRepo, movementRepo: movementRepo, purchaseRepo: purchaseRepo}
	return inventory.NewPurchasesUseCase(runner, productRepo, purchaseRepo, nil), productRepo, movementRepo, purchaseRepo
}

func TestCreatePurchase_SumaStockYRegistraCompra(t *testing.T) {
	uc, productRepo, movementRepo, purchaseRepo := buildPurchasesUseCase(testProduct("p1", 4))

	res, err := uc.CreatePurchase(context.Background(), testCompanyID, testUserID, dto.CreatePurchaseRequest{
		Provider:      "Distribuidora Norte",
		InvoiceNumber: "F-1042",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p1", Quantity: 6, UnitCost: decimal.RequireFromString("12500")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, int64(10), productRepo.products["p1"].Quantity)
	assert.True(t, res.Total.Equal(decimal.RequireFromString("75000")),
		"total esperado 75000, obtenido %s", res.Total)

	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, entity.MovementTypeEntrada, mov.Type)
	assert.Equal(t, "Purchase: Distribuidora Norte - Invoice #F-1042", mov.Reason)
	assert.Equal(t, int64(4), mov.PreviousQuantity)
	assert.Equal(t, int64(10), mov.NewQuantity)

	assert.NotNil(t, purchaseRepo.purchases[res.ID])
}

func TestCreatePurchase_VariasLineasMismoProductoSeAcumulan(t *testing.T) {
	uc, productRepo, movementRepo, _ := buildPurchasesUseCase(testProduct("p1", 0))

	_, err := uc.CreatePurchase(context.Background(), testCompanyID, testUserID, dto.CreatePurchaseRequest{
		Provider:      "Distribuidora Norte",
		InvoiceNumber: "F-1043",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "p1", Quantity: 3, UnitCost: decimal.RequireFromString("1000")},
			{ProductID: "p1", Quantity: 2, UnitCost: decimal.RequireFromString("1000")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), productRepo.products["p1"].Quantity)
	require.Len(t, movementRepo.movements, 2)
	assert.Equal(t, int64(3), movementRepo.movements[1].PreviousQuantity,
		"la segunda línea ve el efecto de la primera")
}

func TestCreatePurchase_ProductoInexistenteEsNotFound(t *testing.T) {
	uc, productRepo, _, _ := buildPurchasesUseCase(testProduct("p1", 4))

	_, err := uc.CreatePurchase(context.Background(), testCompanyID, testUserID, dto.CreatePurchaseRequest{
		Provider:      "Distribuidora Norte",
		InvoiceNumber: "F-1044",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "fantasma", Quantity: 1, UnitCost: decimal.RequireFromString("1000")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(4), productRepo.products["p1"].Quantity)
}

func TestCreatePurchase_SinLineasEsError(t *testing.T) {
	uc, _, _, _ := buildPurchasesUseCase(testProduct("p1", 4))

	_, err := uc.CreatePurchase(context.Background(), testCompanyID, testUserID, dto.CreatePurchaseRequest{
		Provider:      "Distribuidora Norte",
		InvoiceNumber: "F-1045",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
