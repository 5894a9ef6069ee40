package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/catalog"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

// registryWith arma un registro con una marca y una categoría conocidas.
func registryWith(t *testing.T) *catalog.Registry {
	t.Helper()
	brands := []*entity.Brand{
		{ID: "b1", CompanyID: testCompanyID, Name: "Sony", Code: "SON"},
	}
	categories := []*entity.Category{
		{ID: "c1", CompanyID: testCompanyID, Name: "Audio", Code: "001"},
	}
	return catalog.NewRegistry(brands, categories)
}

func productsFor(brand, category string, n int) []*entity.Product {
	list := make([]*entity.Product, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, &entity.Product{Brand: brand, Category: category})
	}
	return list
}

func TestGenerateSKU_FormatoYSecuencia(t *testing.T) {
	reg := registryWith(t)

	// Dos productos existentes del par Sony/Audio: el siguiente es el tercero.
	sku, err := catalog.GenerateSKU(reg, "Sony", "Audio", productsFor("Sony", "Audio", 2))
	require.NoError(t, err)
	assert.Equal(t, "SON001-003", sku)
}

func TestGenerateSKU_EsIdempotenteSinCambios(t *testing.T) {
	reg := registryWith(t)
	products := productsFor("Sony", "Audio", 4)

	first, err := catalog.GenerateSKU(reg, "Sony", "Audio", products)
	require.NoError(t, err)
	second, err := catalog.GenerateSKU(reg, "Sony", "Audio", products)
	require.NoError(t, err)

	assert.Equal(t, first, second, "regenerar con la misma lista debe dar el mismo SKU")
}

func TestGenerateSKU_AvanzaAlAgregarProducto(t *testing.T) {
	reg := registryWith(t)

	products := productsFor("Sony", "Audio", 1)
	sku, err := catalog.GenerateSKU(reg, "Sony", "Audio", products)
	require.NoError(t, err)
	assert.Equal(t, "SON001-002", sku)

	products = append(products, &entity.Product{Brand: "Sony", Category: "Audio", SKU: sku})
	next, err := catalog.GenerateSKU(reg, "Sony", "Audio", products)
	require.NoError(t, err)
	assert.Equal(t, "SON001-003", next, "agregar un producto del par avanza la secuencia en uno")
}

func TestGenerateSKU_FallbacksParaNoRegistrados(t *testing.T) {
	reg := registryWith(t)

	// Marca y categoría sin registrar: código derivado + 999.
	sku, err := catalog.GenerateSKU(reg, "Acme", "Ferretería", nil)
	require.NoError(t, err)
	assert.Equal(t, "ACM999-001", sku)
}

func TestGenerateSKU_SeleccionVaciaEsError(t *testing.T) {
	reg := registryWith(t)

	_, err := catalog.GenerateSKU(reg, "", "Audio", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = catalog.GenerateSKU(reg, "Sony", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateSKU_SecuenciaEscopadaPorPar(t *testing.T) {
	reg := registryWith(t)

	// Productos de otros pares no cuentan para la secuencia Sony/Audio.
	products := []*entity.Product{
		{Brand: "Sony", Category: "Video"},
		{Brand: "Acme", Category: "Audio"},
		{Brand: "Sony", Category: "Audio"},
	}
	sku, err := catalog.GenerateSKU(reg, "Sony", "Audio", products)
	require.NoError(t, err)
	assert.Equal(t, "SON001-002", sku)
}

func TestStatusFor_Umbrales(t *testing.T) {
	assert.Equal(t, entity.StatusOutOfStock, catalog.StatusFor(0))
	assert.Equal(t, entity.StatusOutOfStock, catalog.StatusFor(-3), "negativo también es Out of Stock")
	assert.Equal(t, entity.StatusLowStock, catalog.StatusFor(1))
	assert.Equal(t, entity.StatusLowStock, catalog.StatusFor(9))
	assert.Equal(t, entity.StatusInStock, catalog.StatusFor(10), "el umbral es estricto: 10 ya es In Stock")
	assert.Equal(t, entity.StatusInStock, catalog.StatusFor(500))
}
