// Package catalog contiene el registro de categorías y el almacén de productos:
// la colección en memoria, sus invariantes y la persistencia en archivo plano.
package catalog

import (
	"fmt"
	"sync"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	domaincatalog "github.com/jhoicas/catalogo-productos/internal/domain/catalog"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

// DefaultCategories categorías iniciales cuando no existe el archivo de categorías.
func DefaultCategories() []entity.Category {
	return []entity.Category{
		{ID: 1, Name: "Alimentos", Description: "Productos alimenticios", Sector: "Perecederos"},
		{ID: 2, Name: "Bebidas", Description: "Bebidas en general", Sector: "Perecederos"},
		{ID: 3, Name: "Limpieza", Description: "Productos de limpieza general", Sector: "Químicos"},
	}
}

// CategoryRegistry conjunto de categorías identificado por ID, inmutable tras la carga
// salvo por Replace, que reemplaza y vuelve a guardar el conjunto completo.
type CategoryRegistry struct {
	mu         sync.RWMutex
	repo       repository.CategoryRepository
	log        *logger.Logger
	categories []entity.Category
	byID       map[int]entity.Category
}

// NewCategoryRegistry construye el registro (vacío hasta llamar a Load).
func NewCategoryRegistry(repo repository.CategoryRepository, log *logger.Logger) *CategoryRegistry {
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryRegistry{
		repo: repo,
		log:  log.Component("category_registry"),
		byID: map[int]entity.Category{},
	}
}

// Load lee el archivo de categorías. Si no existe, escribe las categorías por defecto
// para que las cargas siguientes sean deterministas. Las líneas inválidas se omiten.
func (r *CategoryRegistry) Load() ([]entity.Category, error) {
	res, err := r.repo.LoadAll()
	if err != nil {
		return nil, err
	}

	categories := res.Categories
	if res.Missing {
		categories = DefaultCategories()
		if err := r.repo.SaveAll(categories); err != nil {
			r.log.Error().Err(err).Msg("no se pudieron guardar las categorías por defecto")
			return nil, err
		}
		r.log.Info().Int("categories", len(categories)).Msg("archivo de categorías creado con valores por defecto")
	}
	if len(res.Failures) > 0 {
		r.log.Warn().Int("failures", len(res.Failures)).Msg("categorías omitidas durante la carga")
	}
	if len(categories) == 0 {
		r.log.Warn().Msg("registro de categorías vacío")
	}

	r.mu.Lock()
	r.set(categories)
	r.mu.Unlock()
	return r.All(), nil
}

// Save sobrescribe el archivo con el conjunto actual, en su orden.
func (r *CategoryRegistry) Save() error {
	return r.repo.SaveAll(r.All())
}

// Replace valida y guarda un conjunto completo nuevo; solo si se persiste reemplaza el conjunto en memoria.
func (r *CategoryRegistry) Replace(categories []entity.Category) error {
	seen := make(map[int]struct{}, len(categories))
	for _, c := range categories {
		if err := domaincatalog.ValidateCategory(c); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return domain.NewValidationError(domain.RuleCategory, fmt.Sprintf("ID de categoría repetido: %d", c.ID))
		}
		seen[c.ID] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.repo.SaveAll(categories); err != nil {
		r.log.Error().Err(err).Msg("guardar categorías")
		return err
	}
	r.set(categories)
	return nil
}

// FindByID devuelve la categoría con ese ID o domain.ErrNotFound.
func (r *CategoryRegistry) FindByID(id int) (entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return entity.Category{}, fmt.Errorf("categoría %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// All copia del conjunto en su orden de carga.
func (r *CategoryRegistry) All() []entity.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r *CategoryRegistry) set(categories []entity.Category) {
	r.categories = make([]entity.Category, len(categories))
	copy(r.categories, categories)
	r.byID = make(map[int]entity.Category, len(categories))
	for _, c := range categories {
		r.byID[c.ID] = c
	}
}

var _ domaincatalog.CategoryResolver = (*CategoryRegistry)(nil)
