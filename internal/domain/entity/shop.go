package entity

import "time"

// Shop representa una droguería (punto de venta) de la empresa.
// WarehouseID referencia la bodega que la abastece: a lo sumo una, y siempre
// asignada o retirada mediante acciones explícitas, nunca por edición directa.
type Shop struct {
	ID          string
	CompanyID   string
	Name        string
	Address     string
	Phone       string
	Email       string // contacto para notificaciones de solicitudes
	WarehouseID string // vacío = sin bodega asignada
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAssigned informa si la droguería tiene bodega de abastecimiento.
func (s *Shop) IsAssigned() bool {
	return s.WarehouseID != ""
}
