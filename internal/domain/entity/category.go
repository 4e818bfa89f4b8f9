package entity

// Category representa una categoría de productos.
// La identidad es solo el ID: dos categorías con el mismo ID son la misma entidad.
type Category struct {
	ID          int
	Name        string
	Description string
	Sector      string // agrupación más amplia que el nombre, usada en reportes
}

// IsZero indica que el producto no referencia ninguna categoría.
func (c Category) IsZero() bool { return c.ID == 0 }
