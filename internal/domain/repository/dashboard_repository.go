package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardCounts resultado crudo de las consultas de conteo del tablero.
// Lo produce la DB; el use case lo convierte en DTO.
type DashboardCounts struct {
	Medicines       int
	Categories      int
	Warehouses      int
	Shops           int
	PendingRequests int
	PendingReturns  int
	LowStock        int
}

// DashboardRepository define las consultas de lectura del tablero.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	// GetCounts devuelve los conteos del resumen. lowStockThreshold viene de
	// la configuración de la empresa (AppSettings.LowStockThreshold).
	GetCounts(ctx context.Context, companyID string, lowStockThreshold decimal.Decimal) (*DashboardCounts, error)
}
