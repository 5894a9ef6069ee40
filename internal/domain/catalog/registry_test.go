package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/catalog"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

const testCompanyID = "00000000-0000-0000-0000-000000000002"

// ──────────────────────────────────────────────────────────────────────────────
// Marcas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrCreateBrand_CreaConCodigoDerivado(t *testing.T) {
	reg := catalog.NewRegistry(nil, nil)

	brand, created := reg.GetOrCreateBrand(testCompanyID, "Sony", "")
	require.NotNil(t, brand)
	assert.True(t, created, "marca nueva debe reportarse como creada")
	assert.Equal(t, "SON", brand.Code, "código derivado de los primeros 3 caracteres en mayúscula")
	assert.Equal(t, testCompanyID, brand.CompanyID)
}

func TestGetOrCreateBrand_LookupNoDuplicaNiCambiaCodigo(t *testing.T) {
	reg := catalog.NewRegistry(nil, nil)
	first, _ := reg.GetOrCreateBrand(testCompanyID, "Sony", "")

	// Mismo nombre con distinta capitalización: debe devolver la existente.
	again, created := reg.GetOrCreateBrand(testCompanyID, "SONY", "XXX")
	assert.False(t, created, "lookup no debe crear otra marca")
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "SON", again.Code, "el código suministrado se ignora si la marca ya existe")
}

func TestGetOrCreateBrand_NombreConTildes(t *testing.T) {
	reg := catalog.NewRegistry(nil, nil)
	first, _ := reg.GetOrCreateBrand(testCompanyID, "Época", "")

	assert.Equal(t, "EPO", first.Code, "el código derivado no lleva tildes")

	// Buscar sin tilde debe encontrar la misma marca.
	again, created := reg.GetOrCreateBrand(testCompanyID, "epoca", "")
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
}

func TestGetOrCreateBrand_RespetaCodigoExplicito(t *testing.T) {
	reg := catalog.NewRegistry(nil, nil)
	brand, created := reg.GetOrCreateBrand(testCompanyID, "Samsung", "SMG")
	assert.True(t, created)
	assert.Equal(t, "SMG", brand.Code)
}

func TestDeriveBrandCode_NombresCortos(t *testing.T) {
	assert.Equal(t, "LG", catalog.DeriveBrandCode("LG"), "nombres de menos de 3 caracteres quedan tal cual")
	assert.Equal(t, "HP", catalog.DeriveBrandCode("hp"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrCreateCategory_CodigosSecuenciales(t *testing.T) {
	reg := catalog.NewRegistry(nil, nil)

	audio, created := reg.GetOrCreateCategory(testCompanyID, "Audio")
	require.True(t, created)
	assert.Equal(t, "001", audio.Code, "primera categoría recibe 001")

	video, _ := reg.GetOrCreateCategory(testCompanyID, "Video")
	assert.Equal(t, "002", video.Code)

	// Lookup: no avanza la secuencia.
	again, created := reg.GetOrCreateCategory(testCompanyID, "audio")
	assert.False(t, created)
	assert.Equal(t, audio.ID, again.ID)

	tercera, _ := reg.GetOrCreateCategory(testCompanyID, "Accesorios")
	assert.Equal(t, "003", tercera.Code)
}

func TestGetOrCreateCategory_IgnoraCodigosNoNumericos(t *testing.T) {
	seed := []*entity.Category{
		{ID: "c1", CompanyID: testCompanyID, Name: "Legacy", Code: "ABC"},
		{ID: "c2", CompanyID: testCompanyID, Name: "Audio", Code: "005"},
	}
	reg := catalog.NewRegistry(nil, seed)

	nueva, created := reg.GetOrCreateCategory(testCompanyID, "Video")
	require.True(t, created)
	assert.Equal(t, "006", nueva.Code, "el máximo se calcula solo sobre códigos numéricos")
}

func TestRegistry_Refresh(t *testing.T) {
	reg := catalog.NewRegistry(nil, nil)
	reg.GetOrCreateBrand(testCompanyID, "Sony", "")

	reg.Refresh(nil, nil)
	assert.Nil(t, reg.FindBrand("Sony"), "Refresh reemplaza el snapshot completo")
}
