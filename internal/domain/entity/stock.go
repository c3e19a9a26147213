package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (signo decide entrada/salida)
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
)

// Stock representa las existencias de un medicamento en una bodega
// (tabla materializada; solo la mueve el motor de movimientos).
type Stock struct {
	MedicineID  string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockMovement es el registro inmutable de cada cambio de existencias.
// Quantity va con signo: positiva en entradas, negativa en salidas. Un
// TRANSFER escribe dos filas (origen negativa, destino positiva) con el
// mismo TransactionID; Reference enlaza la operación de negocio que lo
// originó, p. ej. "purchase_request:<id>" o "return:<id>".
type StockMovement struct {
	ID            string
	CompanyID     string
	TransactionID string
	MedicineID    string
	WarehouseID   string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Reference     string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// ValidMovementType informa si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}
