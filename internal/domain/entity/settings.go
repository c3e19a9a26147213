package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxSettings es la configuración tributaria de la empresa. Existe a lo sumo
// una fila por empresa; GET sin fila devuelve los valores por defecto.
type TaxSettings struct {
	ID               string
	CompanyID        string
	GSTEnabled       bool
	GSTRate          decimal.Decimal
	VATEnabled       bool
	VATRate          decimal.Decimal
	PriceIncludesTax bool
	RoundTotals      bool
	BusinessName     string
	TaxID            string
	Address          string
	Phone            string
	Email            string
	UpdatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DefaultTaxSettings devuelve la configuración tributaria inicial de una
// empresa que aún no ha guardado la suya.
func DefaultTaxSettings(companyID string) *TaxSettings {
	return &TaxSettings{
		CompanyID:        companyID,
		GSTEnabled:       false,
		GSTRate:          decimal.Zero,
		VATEnabled:       true,
		VATRate:          decimal.NewFromInt(19),
		PriceIncludesTax: false,
		RoundTotals:      true,
	}
}

// AppSettings son las preferencias generales de la consola, una fila por
// empresa con las mismas semánticas de singleton que TaxSettings.
type AppSettings struct {
	ID                string
	CompanyID         string
	Currency          string
	Timezone          string
	DateFormat        string
	LowStockThreshold decimal.Decimal
	ItemsPerPage      int
	UpdatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultAppSettings devuelve las preferencias iniciales de una empresa.
func DefaultAppSettings(companyID string) *AppSettings {
	return &AppSettings{
		CompanyID:         companyID,
		Currency:          "COP",
		Timezone:          "America/Bogota",
		DateFormat:        "2006-01-02",
		LowStockThreshold: decimal.NewFromInt(10),
		ItemsPerPage:      25,
	}
}
