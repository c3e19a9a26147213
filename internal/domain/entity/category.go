package entity

import "time"

// Category representa una categoría de medicamentos (jerarquía de un solo nivel).
// ParentID solo puede apuntar a una categoría de primer nivel de la misma
// empresa; la verificación de ciclos más allá de eso no se aplica.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	ParentID    string // vacío si es de primer nivel
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTopLevel informa si la categoría puede ofrecerse como padre seleccionable.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == ""
}
