package usecase

import (
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/catalog"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
)

// CatalogUseCase expone los registros de marcas y categorías con semántica
// lookup-or-create: crear con un nombre ya registrado devuelve el existente.
type CatalogUseCase struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{brandRepo: brandRepo, categoryRepo: categoryRepo}
}

// CreateBrand busca o crea la marca. El bool indica si fue creada.
func (uc *CatalogUseCase) CreateBrand(companyID string, in dto.CreateBrandRequest) (*dto.BrandResponse, bool, error) {
	reg, err := uc.loadRegistry(companyID)
	if err != nil {
		return nil, false, err
	}
	brand, created := reg.GetOrCreateBrand(companyID, in.Name, in.Code)
	if created {
		if err := uc.brandRepo.Create(brand); err != nil {
			return nil, false, err
		}
	}
	return toBrandResponse(brand), created, nil
}

// ListBrands lista las marcas de la empresa.
func (uc *CatalogUseCase) ListBrands(companyID string) ([]dto.BrandResponse, error) {
	brands, err := uc.brandRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		items = append(items, *toBrandResponse(b))
	}
	return items, nil
}

// CreateCategory busca o crea la categoría con código secuencial automático.
// El bool indica si fue creada.
func (uc *CatalogUseCase) CreateCategory(companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, bool, error) {
	reg, err := uc.loadRegistry(companyID)
	if err != nil {
		return nil, false, err
	}
	category, created := reg.GetOrCreateCategory(companyID, in.Name)
	if created {
		if err := uc.categoryRepo.Create(category); err != nil {
			return nil, false, err
		}
	}
	return toCategoryResponse(category), created, nil
}

// ListCategories lista las categorías de la empresa.
func (uc *CatalogUseCase) ListCategories(companyID string) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

func (uc *CatalogUseCase) loadRegistry(companyID string) (*catalog.Registry, error) {
	brands, err := uc.brandRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return catalog.NewRegistry(brands, categories), nil
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	if b == nil {
		return nil
	}
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, Code: b.Code, CreatedAt: b.CreatedAt}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Code: c.Code, CreatedAt: c.CreatedAt}
}
