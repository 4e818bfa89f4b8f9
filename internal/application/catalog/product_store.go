package catalog

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	domaincatalog "github.com/jhoicas/catalogo-productos/internal/domain/catalog"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

const codeAttempts = 16

// LoadReport resumen de la carga inicial del catálogo.
type LoadReport struct {
	Loaded   int
	Failures []*domain.DecodeError
	HeaderOK bool
	Created  bool
}

// ProductStore colección en memoria de productos con sus invariantes:
//   - no hay dos productos con el mismo código;
//   - toda mutación pasa por la validación antes de tocar la colección;
//   - cada mutación exitosa reescribe el archivo completo.
//
// Un único mutex serializa validar/mutar/persistir, así el almacén puede exponerse a varios hilos (HTTP).
// Si la persistencia falla tras mutar, la memoria NO se revierte: el almacén queda Dirty hasta el
// próximo guardado exitoso (Flush o la siguiente mutación).
type ProductStore struct {
	mu         sync.Mutex
	repo       repository.ProductRepository
	categories domaincatalog.CategoryResolver
	log        *logger.Logger
	now        func() time.Time
	products   []entity.Product
	dirty      bool
}

// Option configura el ProductStore.
type Option func(*ProductStore)

// WithClock reemplaza el reloj usado para "hoy" (tests).
func WithClock(now func() time.Time) Option {
	return func(s *ProductStore) { s.now = now }
}

// NewProductStore construye el almacén (vacío hasta llamar a Load).
func NewProductStore(
	repo repository.ProductRepository,
	categories domaincatalog.CategoryResolver,
	log *logger.Logger,
	opts ...Option,
) *ProductStore {
	if log == nil {
		log = logger.Nop()
	}
	s := &ProductStore{
		repo:       repo,
		categories: categories,
		log:        log.Component("product_store"),
		now:        time.Now,
		products:   []entity.Product{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reemplaza la colección con el contenido del archivo. Las líneas corruptas se reportan, no abortan.
func (s *ProductStore) Load() (*LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.repo.LoadAll(s.categories)
	if err != nil {
		s.log.Error().Err(err).Msg("cargar catálogo")
		return nil, err
	}
	s.products = res.Products
	s.dirty = false

	ev := s.log.Info().Int("products", len(res.Products)).Int("failures", len(res.Failures))
	if !res.HeaderOK {
		ev = ev.Bool("header_ok", false)
	}
	ev.Msg("catálogo cargado")

	return &LoadReport{
		Loaded:   len(res.Products),
		Failures: res.Failures,
		HeaderOK: res.HeaderOK,
		Created:  res.Created,
	}, nil
}

// Add valida y agrega un producto nuevo. Falla con ValidationError o ErrDuplicateCode sin tocar la colección.
func (s *ProductStore) Add(p entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.validate(p)
	if err != nil {
		return err
	}
	if s.indexOf(p.Code) >= 0 {
		return fmt.Errorf("producto con el código %s ya registrado: %w", p.Code, domain.ErrDuplicateCode)
	}
	s.products = append(s.products, p)
	return s.persist("add", p.Code)
}

// Update reemplaza los campos mutables del producto existente con el mismo código.
// Falla con ErrNotFound (sin mutar ni persistir) si el código no existe.
func (s *ProductStore) Update(p entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.validate(p)
	if err != nil {
		return err
	}
	i := s.indexOf(p.Code)
	if i < 0 {
		return fmt.Errorf("producto con el código %s no encontrado para actualizar: %w", p.Code, domain.ErrNotFound)
	}
	s.products[i] = p
	return s.persist("update", p.Code)
}

// Remove elimina el producto por código. Devuelve false (sin error ni persistencia) si no existe.
func (s *ProductStore) Remove(code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(code)
	if i < 0 {
		return false, nil
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return true, s.persist("remove", code)
}

// FindByCode búsqueda opcional: ok=false si no existe.
func (s *ProductStore) FindByCode(code string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(code)
	if i < 0 {
		return entity.Product{}, false
	}
	return s.products[i], true
}

// ListAll copia (snapshot) de la colección en orden de inserción.
func (s *ProductStore) ListAll() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Flush reescribe el archivo con el estado actual en memoria (reintento tras un PersistenceError).
func (s *ProductStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist("flush", "")
}

// Dirty indica si memoria y disco divergen por un guardado fallido.
func (s *ProductStore) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SuggestCode genera un código de 8 caracteres alfanuméricos que no está en uso.
func (s *ProductStore) SuggestCode() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < codeAttempts; i++ {
		code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
		if s.indexOf(code) < 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("no se pudo generar un código libre tras %d intentos", codeAttempts)
}

// Today fecha de referencia del almacén para la validación (medianoche UTC).
func (s *ProductStore) Today() time.Time {
	return entity.Date(s.now())
}

// validate aplica las reglas de dominio y normaliza fechas y categoría (copia resuelta del registro).
func (s *ProductStore) validate(p entity.Product) (entity.Product, error) {
	c, err := domaincatalog.ValidateProduct(p, s.Today(), s.categories)
	if err != nil {
		return entity.Product{}, err
	}
	p.Category = c
	p.ManufactureDate = entity.Date(p.ManufactureDate)
	p.ExpiryDate = entity.Date(p.ExpiryDate)
	return p, nil
}

func (s *ProductStore) persist(op, code string) error {
	if err := s.repo.SaveAll(s.products); err != nil {
		s.dirty = true
		s.log.Error().Err(err).Str("op", op).Str("code", code).
			Msg("fallo al persistir; memoria y disco divergen hasta el próximo guardado")
		return err
	}
	s.dirty = false
	s.log.Debug().Str("op", op).Str("code", code).Int("products", len(s.products)).Msg("catálogo persistido")
	return nil
}

func (s *ProductStore) indexOf(code string) int {
	for i := range s.products {
		if s.products[i].Code == code {
			return i
		}
	}
	return -1
}
