package dto

import "time"

// CreateRackRequest entrada para crear una estantería. RackNumber se
// normaliza a mayúsculas en el servidor.
type CreateRackRequest struct {
	RackName    string `json:"rack_name" validate:"required,min=1,max=200"`
	RackNumber  string `json:"rack_number" validate:"required,min=1,max=50"`
	WarehouseID string `json:"warehouse_id" validate:"omitempty,uuid"`
}

// UpdateRackRequest entrada para actualizar una estantería (campos
// opcionales). RackNumber también se normaliza aquí.
type UpdateRackRequest struct {
	RackName    *string `json:"rack_name" validate:"omitempty,min=1,max=200"`
	RackNumber  *string `json:"rack_number" validate:"omitempty,min=1,max=50"`
	WarehouseID *string `json:"warehouse_id"`
}

// RackResponse salida de una estantería. WarehouseName se resuelve en el
// listado; "—" cuando la referencia cuelga.
type RackResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	RackName      string    `json:"rack_name"`
	RackNumber    string    `json:"rack_number"`
	WarehouseID   string    `json:"warehouse_id,omitempty"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RackListResponse lista paginada de estanterías.
type RackListResponse struct {
	Items []RackResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
