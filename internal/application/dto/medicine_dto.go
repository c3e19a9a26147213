package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMedicineRequest entrada para crear un medicamento.
type CreateMedicineRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	GenericName  string          `json:"generic_name" validate:"max=200"`
	CategoryID   string          `json:"category_id" validate:"omitempty,uuid"`
	Manufacturer string          `json:"manufacturer" validate:"max=200"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	UnitMeasure  string          `json:"unit_measure" validate:"required"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// UpdateMedicineRequest entrada para actualizar un medicamento (sin Cost,
// que solo lo mueve el motor de inventario).
type UpdateMedicineRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	GenericName  *string          `json:"generic_name" validate:"omitempty,max=200"`
	CategoryID   *string          `json:"category_id"`
	Manufacturer *string          `json:"manufacturer" validate:"omitempty,max=200"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	UnitMeasure  *string          `json:"unit_measure"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// MedicineResponse salida de un medicamento. CategoryName se resuelve en el
// listado con "—" como marcador cuando la referencia no coincide.
type MedicineResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	GenericName  string          `json:"generic_name"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Manufacturer string          `json:"manufacturer"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Cost         decimal.Decimal `json:"cost"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	UnitMeasure  string          `json:"unit_measure"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MedicineListResponse lista paginada de medicamentos.
type MedicineListResponse struct {
	Items []MedicineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
