package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/usecase"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
)

const testCompanyID = "00000000-0000-0000-0000-000000000002"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[string]*entity.Product
	// skuLookupErr fuerza un fallo en la verificación de SKU duplicado.
	skuLookupErr error
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*entity.Product)}
}

func (s *stubProductRepo) Create(p *entity.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return s.products[id], nil
}

func (s *stubProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	if s.skuLookupErr != nil {
		return nil, s.skuLookupErr
	}
	for _, p := range s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubProductRepo) Update(p *entity.Product) error { return nil }

func (s *stubProductRepo) UpdateStock(productID string, quantity int64, status string, revision int64) error {
	return nil
}

func (s *stubProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return s.ListAllByCompany(companyID)
}

func (s *stubProductRepo) ListAllByCompany(companyID string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range s.products {
		if p.CompanyID == companyID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (s *stubProductRepo) ListLowStock(companyID string, threshold int64) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Delete(id string) error {
	delete(s.products, id)
	return nil
}

type stubBrandRepo struct{ brands []*entity.Brand }

var _ repository.BrandRepository = (*stubBrandRepo)(nil)

func (s *stubBrandRepo) Create(b *entity.Brand) error {
	s.brands = append(s.brands, b)
	return nil
}

func (s *stubBrandRepo) ListByCompany(companyID string) ([]*entity.Brand, error) {
	return s.brands, nil
}

type stubCategoryRepo struct{ categories []*entity.Category }

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func (s *stubCategoryRepo) Create(c *entity.Category) error {
	s.categories = append(s.categories, c)
	return nil
}

func (s *stubCategoryRepo) ListByCompany(companyID string) ([]*entity.Category, error) {
	return s.categories, nil
}

func buildProductUseCase() (*usecase.ProductUseCase, *stubProductRepo, *stubBrandRepo, *stubCategoryRepo) {
	productRepo := newStubProductRepo()
	brandRepo := &stubBrandRepo{}
	categoryRepo := &stubCategoryRepo{}
	return usecase.NewProductUseCase(productRepo, brandRepo, categoryRepo, nil), productRepo, brandRepo, categoryRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_GeneraSKUConCategoriaRegistrada(t *testing.T) {
	productRepo := newStubProductRepo()
	brandRepo := &stubBrandRepo{}
	categoryRepo := &stubCategoryRepo{categories: []*entity.Category{
		{ID: "c1", CompanyID: testCompanyID, Name: "Audio", Code: "001"},
	}}
	uc := usecase.NewProductUseCase(productRepo, brandRepo, categoryRepo, nil)

	res, err := uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Description: "Audífonos inalámbricos",
		Brand:       "Sony",
		Category:    "Audio",
		Quantity:    5,
	})
	require.NoError(t, err)

	assert.Equal(t, "SON001-001", res.SKU)
	assert.Equal(t, entity.StatusLowStock, res.Status)
	assert.Len(t, productRepo.products, 1)
	require.Len(t, brandRepo.brands, 1, "la marca nueva se persiste")
	assert.Equal(t, "SON", brandRepo.brands[0].Code)
	assert.Len(t, categoryRepo.categories, 1, "la categoría existente no se duplica")
}

func TestCreate_CategoriaNuevaUsaFallbackYQuedaRegistrada(t *testing.T) {
	uc, _, _, categoryRepo := buildProductUseCase()

	res, err := uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Description: "Audífonos inalámbricos",
		Brand:       "Sony",
		Category:    "Audio",
	})
	require.NoError(t, err)

	// El SKU se deriva antes de registrar: la categoría sin código usa 999.
	assert.Equal(t, "SON999-001", res.SKU)
	require.Len(t, categoryRepo.categories, 1)
	assert.Equal(t, "001", categoryRepo.categories[0].Code,
		"la categoría queda registrada con código real para el siguiente producto")
}

func TestCreate_SKUDuplicadoEsError(t *testing.T) {
	uc, _, _, _ := buildProductUseCase()

	req := dto.CreateProductRequest{
		SKU:         "SON001-001",
		Description: "Audífonos inalámbricos",
		Brand:       "Sony",
		Category:    "Audio",
	}
	_, err := uc.Create(context.Background(), testCompanyID, req)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testCompanyID, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_ErrorEnVerificacionDeSKUSePropaga(t *testing.T) {
	uc, productRepo, _, _ := buildProductUseCase()
	lookupErr := errors.New("conexión perdida")
	productRepo.skuLookupErr = lookupErr

	_, err := uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		SKU:         "SON001-001",
		Description: "Audífonos inalámbricos",
		Brand:       "Sony",
		Category:    "Audio",
	})
	assert.ErrorIs(t, err, lookupErr,
		"un fallo transitorio de la DB no debe leerse como 'sin duplicado'")
	assert.Empty(t, productRepo.products, "nada debe persistirse si la verificación falló")
}
