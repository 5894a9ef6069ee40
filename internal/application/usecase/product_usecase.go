package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/application/dto"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/catalog"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/repository"
)

// ProductCache cachea el snapshot de productos de una empresa.
// Implementación típica: Redis con TTL corto. Puede ser nil (sin caché).
type ProductCache interface {
	Get(ctx context.Context, companyID string) ([]*entity.Product, bool, error)
	Set(ctx context.Context, companyID string, products []*entity.Product) error
	Invalidate(ctx context.Context, companyID string) error
}

// ProductUseCase casos de uso CRUD para productos. Quantity y Status se
// manejan vía movimientos; aquí solo se fijan al crear.
type ProductUseCase struct {
	repo         repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	cache        ProductCache
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository, cache ProductCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, brandRepo: brandRepo, categoryRepo: categoryRepo, cache: cache}
}

// Create crea un producto. Con SKU vacío lo genera desde marca + categoría y
// registra marca/categoría nuevas en sus registros (lookup-or-create). El
// registro y el producto se persisten como escrituras separadas, sin garantía
// transaccional entre ambas.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	reg, err := uc.loadRegistry(companyID)
	if err != nil {
		return nil, err
	}

	sku := in.SKU
	if sku == "" {
		products, err := uc.repo.ListAllByCompany(companyID)
		if err != nil {
			return nil, err
		}
		sku, err = catalog.GenerateSKU(reg, in.Brand, in.Category, products)
		if err != nil {
			return nil, err
		}
	}

	existing, err := uc.repo.GetByCompanyAndSKU(companyID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	if brand, created := reg.GetOrCreateBrand(companyID, in.Brand, in.BrandCode); created {
		if err := uc.brandRepo.Create(brand); err != nil {
			return nil, err
		}
	}
	if category, created := reg.GetOrCreateCategory(companyID, in.Category); created {
		if err := uc.categoryRepo.Create(category); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         sku,
		Reference:   in.Reference,
		Description: in.Description,
		Category:    in.Category,
		Brand:       in.Brand,
		Location:    in.Location,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Status:      catalog.StatusFor(in.Quantity),
		Revision:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toProductResponse(product), nil
}

// GenerateSKU previsualiza el SKU para un par (marca, categoría) sin persistir.
func (uc *ProductUseCase) GenerateSKU(companyID, brandName, categoryName string) (string, error) {
	reg, err := uc.loadRegistry(companyID)
	if err != nil {
		return "", err
	}
	products, err := uc.repo.ListAllByCompany(companyID)
	if err != nil {
		return "", err
	}
	return catalog.GenerateSKU(reg, brandName, categoryName, products)
}

// GetByID obtiene un producto por ID validando el tenant.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update actualiza campos editables. No permite modificar Quantity ni Status
// (se manejan vía movimientos) y cambiar marca/categoría no reescribe el SKU.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Reference != nil {
		product.Reference = *in.Reference
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación, servido desde el snapshot
// cacheado cuando existe.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	snapshot, err := uc.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	total := len(snapshot)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	items := make([]dto.ProductResponse, 0, end-offset)
	for _, p := range snapshot[offset:end] {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina un producto. El borrado es definitivo: los movimientos ya
// escritos son el único historial que queda.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

// loadRegistry arma el registro de códigos desde la persistencia.
func (uc *ProductUseCase) loadRegistry(companyID string) (*catalog.Registry, error) {
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

// snapshot devuelve la lista completa de productos, cacheada si es posible.
func (uc *ProductUseCase) snapshot(ctx context.Context, companyID string) ([]*entity.Product, error) {
	if uc.cache != nil {
		if cached, ok, err := uc.cache.Get(ctx, companyID); err == nil && ok {
			return cached, nil
		}
	}
	snapshot, err := uc.repo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, companyID, snapshot)
	}
	return snapshot, nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, companyID string) {
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, companyID)
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Reference:   p.Reference,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
		Location:    p.Location,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
