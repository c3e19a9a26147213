package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReturnRequest entrada para registrar una devolución de una droguería
// hacia una bodega.
type CreateReturnRequest struct {
	ShopID      string          `json:"shop_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	MedicineID  string          `json:"medicine_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason" validate:"max=500"`
}

// RejectReturnRequest body de POST /api/returns/:id/reject.
type RejectReturnRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ReturnResponse salida de una devolución con los nombres resueltos.
type ReturnResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	ShopID        string          `json:"shop_id"`
	ShopName      string          `json:"shop_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	MedicineID    string          `json:"medicine_id"`
	MedicineName  string          `json:"medicine_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	Status        string          `json:"status"`
	RequestedBy   string          `json:"requested_by"`
	ProcessedBy   string          `json:"processed_by,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReturnListResponse lista paginada de devoluciones.
type ReturnListResponse struct {
	Items []ReturnResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
