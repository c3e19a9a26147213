package dto

import "time"

// CreateShopRequest entrada para crear una droguería. La asignación a bodega
// no se hace aquí sino con la acción explícita de asignación.
type CreateShopRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"max=300"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateShopRequest entrada para actualizar una droguería (campos opcionales,
// nunca warehouse_id).
type UpdateShopRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// AssignWarehouseRequest body de POST /api/shops/:id/assign-warehouse.
type AssignWarehouseRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
}

// ShopResponse salida de una droguería. WarehouseName se resuelve en el
// listado; vacío cuando no está asignada y "—" cuando la referencia cuelga.
type ShopResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	WarehouseID   string    `json:"warehouse_id,omitempty"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ShopListResponse lista paginada de droguerías.
type ShopListResponse struct {
	Items []ShopResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
