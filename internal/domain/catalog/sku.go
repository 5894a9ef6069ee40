package catalog

import (
	"fmt"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain"
	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

// FallbackCategoryCode es el código sentinela cuando la categoría seleccionada
// no está registrada. Se preserva por compatibilidad con SKUs ya emitidos.
const FallbackCategoryCode = "999"

// GenerateSKU deriva el código de producto con el layout fijo
// <brandCode><categoryCode>-<secuencia de 3 dígitos>, ej. SON001-003.
//
// La secuencia se escopa al par (marca, categoría): cuenta los productos
// existentes cuyo brand y category coinciden exactamente con la selección y
// suma uno. Regenerar con la misma lista de productos es idempotente; agregar
// un producto al mismo par avanza la secuencia en uno. No hay verificación de
// unicidad contra SKUs editados a mano: la derivación es solo por conteo.
func GenerateSKU(reg *Registry, brandName, categoryName string, products []*entity.Product) (string, error) {
	if brandName == "" || categoryName == "" {
		return "", domain.ErrInvalidInput
	}

	brandCode := DeriveBrandCode(brandName)
	if b := reg.FindBrand(brandName); b != nil {
		brandCode = b.Code
	}

	categoryCode := FallbackCategoryCode
	if c := reg.FindCategory(categoryName); c != nil {
		categoryCode = c.Code
	}

	return fmt.Sprintf("%s%s-%03d", brandCode, categoryCode, NextSequence(brandName, categoryName, products)), nil
}

// NextSequence devuelve el siguiente número de secuencia para el par
// (marca, categoría): productos existentes con coincidencia exacta + 1.
func NextSequence(brandName, categoryName string, products []*entity.Product) int {
	count := 0
	for _, p := range products {
		if p.Brand == brandName && p.Category == categoryName {
			count++
		}
	}
	return count + 1
}
