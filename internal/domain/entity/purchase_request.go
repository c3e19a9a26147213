package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de compra (droguería → bodega).
const (
	RequestStatusPending    = "pending"
	RequestStatusApproved   = "approved"
	RequestStatusRejected   = "rejected"
	RequestStatusDispatched = "dispatched"
	RequestStatusCancelled  = "cancelled"
)

// Prioridades de una solicitud de compra.
const (
	RequestPriorityLow    = "low"
	RequestPriorityNormal = "normal"
	RequestPriorityHigh   = "high"
	RequestPriorityUrgent = "urgent"
)

// PurchaseRequest representa el encabezado de una solicitud de abastecimiento
// que una droguería hace a su bodega. El flujo de estados es
// pending → approved → dispatched, con rejected y cancelled como terminales.
type PurchaseRequest struct {
	ID              string
	CompanyID       string
	ShopID          string
	WarehouseID     string
	Priority        string
	Status          string
	Notes           string
	RequestedBy     string
	ApprovedBy      string // vacío hasta aprobar
	ApprovedAt      *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []PurchaseRequestItem
}

// PurchaseRequestItem es una línea de la solicitud. AvailableStock e
// IsStockAvailable NO se persisten: el servidor los calcula en cada lectura
// contra el stock vigente de la bodega.
type PurchaseRequestItem struct {
	ID                string
	RequestID         string
	MedicineID        string
	QuantityRequested decimal.Decimal
	SortOrder         int

	AvailableStock   decimal.Decimal
	IsStockAvailable bool
}

// ValidRequestStatus informa si s es un estado conocido.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected,
		RequestStatusDispatched, RequestStatusCancelled:
		return true
	}
	return false
}

// ValidRequestPriority informa si p es una prioridad conocida.
func ValidRequestPriority(p string) bool {
	switch p {
	case RequestPriorityLow, RequestPriorityNormal, RequestPriorityHigh, RequestPriorityUrgent:
		return true
	}
	return false
}

// CanApprove informa si todas las líneas tienen stock disponible.
// Es la misma regla que la consola usa para deshabilitar el botón Aprobar;
// el servidor la vuelve a aplicar como verificación autoritativa.
func (r *PurchaseRequest) CanApprove() bool {
	for _, it := range r.Items {
		if !it.IsStockAvailable {
			return false
		}
	}
	return true
}
