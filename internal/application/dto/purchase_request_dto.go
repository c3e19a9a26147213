package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestItemInput línea de una solicitud al crearla o reemplazar sus líneas.
type RequestItemInput struct {
	MedicineID        string          `json:"medicine_id" validate:"required,uuid"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
}

// CreatePurchaseRequestRequest entrada para crear una solicitud de compra.
// Debe traer al menos una línea.
type CreatePurchaseRequestRequest struct {
	ShopID      string             `json:"shop_id" validate:"required,uuid"`
	WarehouseID string             `json:"warehouse_id" validate:"required,uuid"`
	Priority    string             `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Notes       string             `json:"notes" validate:"max=500"`
	Items       []RequestItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseRequestRequest entrada para editar una solicitud pendiente.
// Las líneas enviadas reemplazan por completo a las existentes.
type UpdatePurchaseRequestRequest struct {
	Priority *string            `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Notes    *string            `json:"notes" validate:"omitempty,max=500"`
	Items    []RequestItemInput `json:"items" validate:"omitempty,min=1,dive"`
}

// RejectRequestRequest body de POST /api/purchase-requests/:id/reject.
type RejectRequestRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// RequestItemResponse línea de solicitud con la disponibilidad calculada por
// el servidor en el momento de la lectura.
type RequestItemResponse struct {
	ID                string          `json:"id"`
	MedicineID        string          `json:"medicine_id"`
	MedicineName      string          `json:"medicine_name"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
	AvailableStock    decimal.Decimal `json:"available_stock"`
	IsStockAvailable  bool            `json:"is_stock_available"`
	SortOrder         int             `json:"sort_order"`
}

// PurchaseRequestResponse salida de una solicitud. CanApprove replica en el
// servidor la regla que la consola usa para deshabilitar el botón Aprobar.
type PurchaseRequestResponse struct {
	ID              string                `json:"id"`
	CompanyID       string                `json:"company_id"`
	ShopID          string                `json:"shop_id"`
	ShopName        string                `json:"shop_name"`
	WarehouseID     string                `json:"warehouse_id"`
	WarehouseName   string                `json:"warehouse_name"`
	Priority        string                `json:"priority"`
	Status          string                `json:"status"`
	Notes           string                `json:"notes"`
	RequestedBy     string                `json:"requested_by"`
	ApprovedBy      string                `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time            `json:"approved_at,omitempty"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	Items           []RequestItemResponse `json:"items"`
	CanApprove      bool                  `json:"can_approve"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// PurchaseRequestListResponse lista paginada de solicitudes.
type PurchaseRequestListResponse struct {
	Items []PurchaseRequestResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
