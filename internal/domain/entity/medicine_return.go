package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una devolución de medicamentos.
const (
	ReturnStatusPending  = "pending"
	ReturnStatusAccepted = "accepted"
	ReturnStatusRejected = "rejected"
)

// MedicineReturn registra mercancía que una droguería devuelve a la bodega.
// Al aceptarla, la bodega reingresa la cantidad a su stock al costo vigente.
// accepted y rejected son estados terminales.
type MedicineReturn struct {
	ID          string
	CompanyID   string
	ShopID      string
	WarehouseID string
	MedicineID  string
	Quantity    decimal.Decimal
	Reason      string
	Status      string
	RequestedBy string
	ProcessedBy string // vacío hasta aceptar o rechazar
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

// ValidReturnStatus informa si s es un estado conocido.
func ValidReturnStatus(s string) bool {
	switch s {
	case ReturnStatusPending, ReturnStatusAccepted, ReturnStatusRejected:
		return true
	}
	return false
}

// IsTerminal informa si la devolución ya fue procesada.
func (m *MedicineReturn) IsTerminal() bool {
	return m.Status != ReturnStatusPending
}
