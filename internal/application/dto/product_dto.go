package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/inventory"
)

// ProductRequest entrada para crear o actualizar un producto.
// En PUT /api/products/:code el código de la ruta prevalece sobre Code.
type ProductRequest struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ManufactureDate string          `json:"manufacture_date"` // YYYY-MM-DD
	ExpiryDate      string          `json:"expiry_date"`      // YYYY-MM-DD
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	StockQuantity   int             `json:"stock_quantity"`
	CategoryID      int             `json:"category_id"`
}

// ToEntity convierte la petición en entidad. Solo falla por formato de fecha;
// las reglas de negocio las aplica el almacén. Fechas vacías quedan en cero (las rechaza la validación).
func (r ProductRequest) ToEntity() (entity.Product, error) {
	p := entity.Product{
		Code:          r.Code,
		Name:          r.Name,
		Description:   r.Description,
		PurchasePrice: r.PurchasePrice,
		SalePrice:     r.SalePrice,
		StockQuantity: r.StockQuantity,
		Category:      entity.Category{ID: r.CategoryID},
	}
	var err error
	if r.ManufactureDate != "" {
		if p.ManufactureDate, err = entity.ParseDate(r.ManufactureDate); err != nil {
			return entity.Product{}, fmt.Errorf("manufacture_date inválido: %w", err)
		}
	}
	if r.ExpiryDate != "" {
		if p.ExpiryDate, err = entity.ParseDate(r.ExpiryDate); err != nil {
			return entity.Product{}, fmt.Errorf("expiry_date inválido: %w", err)
		}
	}
	return p, nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	ManufactureDate string           `json:"manufacture_date"`
	ExpiryDate      string           `json:"expiry_date"`
	PurchasePrice   decimal.Decimal  `json:"purchase_price"`
	SalePrice       decimal.Decimal  `json:"sale_price"`
	StockQuantity   int              `json:"stock_quantity"`
	MarginPct       decimal.Decimal  `json:"margin_pct"`
	Category        CategoryResponse `json:"category"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CodeResponse código sugerido para un producto nuevo.
type CodeResponse struct {
	Code string `json:"code"`
}

// ToProductResponse convierte la entidad en la salida de la API.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		ManufactureDate: p.ManufactureDate.Format(entity.DateLayout),
		ExpiryDate:      p.ExpiryDate.Format(entity.DateLayout),
		PurchasePrice:   p.PurchasePrice,
		SalePrice:       p.SalePrice,
		StockQuantity:   p.StockQuantity,
		MarginPct:       inventory.MarginPct(p.PurchasePrice, p.SalePrice),
		Category:        ToCategoryResponse(p.Category),
	}
}

// ToProductResponses convierte una lista; nunca devuelve nil (JSON "[]").
func ToProductResponses(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
