package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine representa un medicamento del catálogo maestro.
// Cost es promedio ponderado calculado desde movimientos; el stock se maneja
// por bodega en la tabla stock.
type Medicine struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa (ej. registro interno)
	Name         string
	GenericName  string
	CategoryID   string // vacío = sin categoría
	Manufacturer string
	UnitPrice    decimal.Decimal // precio de venta sugerido
	Cost         decimal.Decimal // costo promedio ponderado (inicia en 0)
	TaxRate      decimal.Decimal // porcentaje: 0, 5, 19
	UnitMeasure  string          // caja, blíster, frasco, unidad
	ReorderLevel decimal.Decimal // umbral de stock bajo por bodega
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
