package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el resumen del tablero.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GetCounts devuelve todos los conteos del resumen en una sola consulta.
// El conteo de stock bajo compara el total por medicamento (sumado entre
// bodegas, cero si no hay filas de stock) contra el umbral configurado.
func (r *DashboardRepo) GetCounts(ctx context.Context, companyID string, lowStockThreshold decimal.Decimal) (*repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM medicines  WHERE company_id = $1)                      AS medicines,
	    (SELECT COUNT(*) FROM categories WHERE company_id = $1)                      AS categories,
	    (SELECT COUNT(*) FROM warehouses WHERE company_id = $1)                      AS warehouses,
	    (SELECT COUNT(*) FROM shops      WHERE company_id = $1)                      AS shops,
	    (SELECT COUNT(*) FROM purchase_requests
	        WHERE company_id = $1 AND status = 'pending')                            AS pending_requests,
	    (SELECT COUNT(*) FROM medicine_returns
	        WHERE company_id = $1 AND status = 'pending')                            AS pending_returns,
	    (SELECT COUNT(*)
	        FROM medicines m
	        LEFT JOIN (
	            SELECT medicine_id, SUM(quantity) AS total
	            FROM stock GROUP BY medicine_id
	        ) s ON s.medicine_id = m.id
	        WHERE m.company_id = $1 AND COALESCE(s.total, 0) < $2)                   AS low_stock`

	var counts repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query, companyID, lowStockThreshold).Scan(
		&counts.Medicines,
		&counts.Categories,
		&counts.Warehouses,
		&counts.Shops,
		&counts.PendingRequests,
		&counts.PendingReturns,
		&counts.LowStock,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetCounts: %w", err)
	}
	return &counts, nil
}
