// Package catalog implementa el registro de códigos de marca/categoría y el
// generador de SKU (servicios de dominio, sin dependencias de infraestructura).
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/toyomacho-cloud/toyomacho-ERP-sub002/internal/domain/entity"
)

// Registry mantiene los mapeos nombre→código de marcas y categorías sobre un
// snapshot en memoria, con semántica lookup-or-create. La persistencia de los
// registros nuevos es responsabilidad del caller; Refresh reemplaza el snapshot
// completo (no hay invalidación implícita).
type Registry struct {
	brands     []*entity.Brand
	categories []*entity.Category
}

// NewRegistry construye el registro a partir del snapshot actual.
func NewRegistry(brands []*entity.Brand, categories []*entity.Category) *Registry {
	return &Registry{brands: brands, categories: categories}
}

// Refresh reemplaza el snapshot completo de marcas y categorías.
func (r *Registry) Refresh(brands []*entity.Brand, categories []*entity.Category) {
	r.brands = brands
	r.categories = categories
}

// FindBrand busca una marca por nombre sin distinguir mayúsculas ni tildes.
func (r *Registry) FindBrand(name string) *entity.Brand {
	key := normalizeName(name)
	for _, b := range r.brands {
		if normalizeName(b.Name) == key {
			return b
		}
	}
	return nil
}

// GetOrCreateBrand devuelve la marca existente con ese nombre o crea una nueva.
// Si no se suministra código, se deriva de los primeros 3 caracteres del nombre
// en mayúscula. No se verifica unicidad del código en sí: dos marcas con nombre
// distinto pueden terminar con el mismo código (limitación conocida).
// El segundo valor indica si la marca fue creada en esta llamada.
func (r *Registry) GetOrCreateBrand(companyID, name, code string) (*entity.Brand, bool) {
	if existing := r.FindBrand(name); existing != nil {
		return existing, false
	}
	if code == "" {
		code = DeriveBrandCode(name)
	}
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Code:      code,
		CreatedAt: time.Now(),
	}
	r.brands = append(r.brands, brand)
	return brand, true
}

// FindCategory busca una categoría por nombre sin distinguir mayúsculas ni tildes.
func (r *Registry) FindCategory(name string) *entity.Category {
	key := normalizeName(name)
	for _, c := range r.categories {
		if normalizeName(c.Name) == key {
			return c
		}
	}
	return nil
}

// GetOrCreateCategory devuelve la categoría existente o crea una nueva con el
// siguiente código secuencial: max(códigos numéricos existentes) + 1, formateado
// a 3 dígitos. El segundo valor indica si fue creada en esta llamada.
func (r *Registry) GetOrCreateCategory(companyID, name string) (*entity.Category, bool) {
	if existing := r.FindCategory(name); existing != nil {
		return existing, false
	}
	category := &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Code:      r.nextCategoryCode(),
		CreatedAt: time.Now(),
	}
	r.categories = append(r.categories, category)
	return category, true
}

// nextCategoryCode calcula el siguiente código numérico libre ("%03d").
// Los códigos no numéricos se ignoran al buscar el máximo.
func (r *Registry) nextCategoryCode() string {
	max := 0
	for _, c := range r.categories {
		if n, err := strconv.Atoi(c.Code); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%03d", max+1)
}

// DeriveBrandCode deriva el código de marca: primeros 3 caracteres del nombre
// en mayúscula, sin tildes. Nombres más cortos quedan tal cual.
func DeriveBrandCode(name string) string {
	clean := stripDiacritics(strings.TrimSpace(name))
	r := []rune(clean)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// normalizeName normaliza un nombre para comparación: sin tildes, en minúscula
// y sin espacios en los extremos. "Electrónica" y "electronica" son el mismo nombre.
func normalizeName(name string) string {
	return strings.ToLower(stripDiacritics(strings.TrimSpace(name)))
}

// stripDiacritics elimina marcas diacríticas vía descomposición NFD.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
