package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveTaxSettingsRequest body de PUT /api/settings/tax. Upsert completo:
// no hay campos opcionales porque el formulario siempre envía todo.
type SaveTaxSettingsRequest struct {
	GSTEnabled       bool            `json:"gst_enabled"`
	GSTRate          decimal.Decimal `json:"gst_rate"`
	VATEnabled       bool            `json:"vat_enabled"`
	VATRate          decimal.Decimal `json:"vat_rate"`
	PriceIncludesTax bool            `json:"price_includes_tax"`
	RoundTotals      bool            `json:"round_totals"`
	BusinessName     string          `json:"business_name" validate:"max=200"`
	TaxID            string          `json:"tax_id" validate:"max=50"`
	Address          string          `json:"address" validate:"max=300"`
	Phone            string          `json:"phone" validate:"max=50"`
	Email            string          `json:"email" validate:"omitempty,email"`
}

// TaxSettingsResponse salida de GET /api/settings/tax. Si la empresa nunca ha
// guardado, devuelve los valores por defecto con updated_at en cero.
type TaxSettingsResponse struct {
	GSTEnabled       bool            `json:"gst_enabled"`
	GSTRate          decimal.Decimal `json:"gst_rate"`
	VATEnabled       bool            `json:"vat_enabled"`
	VATRate          decimal.Decimal `json:"vat_rate"`
	PriceIncludesTax bool            `json:"price_includes_tax"`
	RoundTotals      bool            `json:"round_totals"`
	BusinessName     string          `json:"business_name"`
	TaxID            string          `json:"tax_id"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	UpdatedBy        string          `json:"updated_by,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at,omitempty"`
}

// SaveAppSettingsRequest body de PUT /api/settings/app.
type SaveAppSettingsRequest struct {
	Currency          string          `json:"currency" validate:"required,len=3"`
	Timezone          string          `json:"timezone" validate:"required"`
	DateFormat        string          `json:"date_format" validate:"required"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	ItemsPerPage      int             `json:"items_per_page" validate:"min=1,max=200"`
}

// AppSettingsResponse salida de GET /api/settings/app.
type AppSettingsResponse struct {
	Currency          string          `json:"currency"`
	Timezone          string          `json:"timezone"`
	DateFormat        string          `json:"date_format"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	ItemsPerPage      int             `json:"items_per_page"`
	UpdatedBy         string          `json:"updated_by,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at,omitempty"`
}
