package flatfile

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/catalog"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

const filePerm = 0o644

// ProductRepository implementa repository.ProductRepository sobre un archivo plano.
type ProductRepository struct {
	path string
	log  *logger.Logger
}

// NewProductRepository construye el repositorio para el archivo indicado.
func NewProductRepository(path string, log *logger.Logger) *ProductRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductRepository{path: path, log: log.Component("product_file")}
}

// LoadAll lee el catálogo completo. Si el archivo no existe lo crea solo con la cabecera.
// Las líneas corruptas o con código repetido se omiten y se devuelven en Failures.
func (r *ProductRepository) LoadAll(categories catalog.CategoryResolver) (*repository.ProductLoadResult, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeFileAtomic(r.path, []byte(ProductHeader+"\n"), filePerm); err != nil {
			return nil, &domain.PersistenceError{Op: "create", Path: r.path, Err: err}
		}
		r.log.Info().Str("path", r.path).Msg("archivo de catálogo creado con cabecera")
		return &repository.ProductLoadResult{Products: []entity.Product{}, HeaderOK: true, Created: true}, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: r.path, Err: err}
	}

	res := &repository.ProductLoadResult{Products: []entity.Product{}}
	seen := make(map[string]struct{})
	text, legacy := decodeText(data)
	if legacy {
		r.log.Warn().Str("path", r.path).Msg("catálogo no está en UTF-8; se leyó como Windows-1252 y se guardará en UTF-8")
	}
	lines := splitLines(text)

	headerChecked := false
	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		// La cabecera es la primera línea no vacía, y solo si no empieza con un código de producto.
		if !headerChecked {
			headerChecked = true
			if strings.TrimSpace(line) == ProductHeader {
				res.HeaderOK = true
				continue
			}
			first, _, _ := strings.Cut(line, catalog.Delimiter)
			if !catalog.ValidCode(first) {
				r.log.Warn().Str("path", r.path).Str("header", line).Msg("cabecera ausente o incorrecta; se intenta cargar igualmente")
				continue
			}
			r.log.Warn().Str("path", r.path).Msg("archivo de catálogo sin cabecera; se intenta cargar igualmente")
		}

		p, err := DecodeProduct(line, categories)
		if err != nil {
			res.Failures = append(res.Failures, r.failure(lineNo, line, err))
			continue
		}
		if _, dup := seen[p.Code]; dup {
			res.Failures = append(res.Failures, r.failure(lineNo, line, &domain.DecodeError{Content: line, Reason: "código duplicado"}))
			continue
		}
		if categories != nil {
			if _, err := categories.FindByID(p.Category.ID); err != nil {
				r.log.Warn().Str("code", p.Code).Int("category_id", p.Category.ID).
					Msg("categoría no registrada; se conservan los datos embebidos en la línea")
			}
		}
		seen[p.Code] = struct{}{}
		res.Products = append(res.Products, p)
	}
	return res, nil
}

// SaveAll reescribe el archivo completo: cabecera + una línea por producto en el orden recibido.
func (r *ProductRepository) SaveAll(products []entity.Product) error {
	var b strings.Builder
	b.WriteString(ProductHeader)
	b.WriteByte('\n')
	for _, p := range products {
		line, err := EncodeProduct(p)
		if err != nil {
			return &domain.PersistenceError{Op: "encode", Path: r.path, Err: err}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := writeFileAtomic(r.path, []byte(b.String()), filePerm); err != nil {
		return &domain.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	r.log.Debug().Str("path", r.path).Int("products", len(products)).Msg("catálogo guardado")
	return nil
}

func (r *ProductRepository) failure(lineNo int, line string, err error) *domain.DecodeError {
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		de = &domain.DecodeError{Content: line, Reason: err.Error(), Err: err}
	}
	de.Source = r.path
	de.Line = lineNo
	r.log.Warn().Str("path", r.path).Int("line", lineNo).Str("content", line).Str("reason", de.Reason).
		Msg("línea de catálogo omitida")
	return de
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
