package entity

import (
	"strings"
	"time"
)

// Rack representa una estantería de almacenamiento dentro de una bodega.
// RackNumber se guarda siempre normalizado en mayúsculas (ej. "a-12" → "A-12").
type Rack struct {
	ID          string
	CompanyID   string
	RackName    string
	RackNumber  string
	WarehouseID string // vacío = sin bodega
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeRackNumber aplica la normalización canónica del número de estantería.
func NormalizeRackNumber(n string) string {
	return strings.ToUpper(strings.TrimSpace(n))
}
