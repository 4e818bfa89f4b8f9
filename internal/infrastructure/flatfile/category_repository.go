package flatfile

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/repository"
	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

// CategoryRepository implementa repository.CategoryRepository sobre un archivo plano sin cabecera.
type CategoryRepository struct {
	path string
	log  *logger.Logger
}

// NewCategoryRepository construye el repositorio para el archivo indicado.
func NewCategoryRepository(path string, log *logger.Logger) *CategoryRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryRepository{path: path, log: log.Component("category_file")}
}

// LoadAll lee todas las categorías. Un archivo inexistente se informa con Missing=true (sin error).
// IDs repetidos: gana la primera aparición, el resto se reporta como fallo.
func (r *CategoryRepository) LoadAll() (*repository.CategoryLoadResult, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &repository.CategoryLoadResult{Missing: true}, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Path: r.path, Err: err}
	}

	res := &repository.CategoryLoadResult{Categories: []entity.Category{}}
	seen := make(map[int]struct{})
	text, legacy := decodeText(data)
	if legacy {
		r.log.Warn().Str("path", r.path).Msg("categorías no están en UTF-8; se leyeron como Windows-1252")
	}
	for i, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := DecodeCategory(line)
		if err == nil {
			if _, dup := seen[c.ID]; dup {
				err = &domain.DecodeError{Content: line, Reason: "id de categoría duplicado"}
			}
		}
		if err != nil {
			var de *domain.DecodeError
			if !errors.As(err, &de) {
				de = &domain.DecodeError{Content: line, Reason: err.Error(), Err: err}
			}
			de.Source, de.Line = r.path, i+1
			r.log.Warn().Int("line", de.Line).Str("content", line).Str("reason", de.Reason).Msg("línea de categoría omitida")
			res.Failures = append(res.Failures, de)
			continue
		}
		seen[c.ID] = struct{}{}
		res.Categories = append(res.Categories, c)
	}
	return res, nil
}

// SaveAll sobrescribe el archivo con el conjunto completo, una línea por categoría.
func (r *CategoryRepository) SaveAll(categories []entity.Category) error {
	var b strings.Builder
	for _, c := range categories {
		line, err := EncodeCategory(c)
		if err != nil {
			return &domain.PersistenceError{Op: "encode", Path: r.path, Err: err}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := writeFileAtomic(r.path, []byte(b.String()), filePerm); err != nil {
		return &domain.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
