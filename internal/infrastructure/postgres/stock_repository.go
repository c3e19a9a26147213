package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un medicamento en una bodega. Sin fila
// devuelve un stock en cero, nunca nil.
func (r *StockRepo) Get(medicineID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT medicine_id, warehouse_id, quantity, updated_at
		FROM stock WHERE medicine_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, medicineID, warehouseID).Scan(
		&s.MedicineID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{MedicineID: medicineID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(medicineID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT medicine_id, warehouse_id, quantity, updated_at
		FROM stock WHERE medicine_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, medicineID, warehouseID).Scan(
		&s.MedicineID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{MedicineID: medicineID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por medicamento y bodega).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (medicine_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (medicine_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.MedicineID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByCompany lista existencias de la empresa; warehouseID y medicineID
// vacíos no filtran. limit <= 0 no limita.
func (r *StockRepo) ListByCompany(companyID, warehouseID, medicineID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT s.medicine_id, s.warehouse_id, s.quantity, s.updated_at
		FROM stock s
		JOIN medicines m ON m.id = s.medicine_id
		WHERE m.company_id = $1`
	args := []any{companyID}
	pos := 2
	if warehouseID != "" {
		query += fmt.Sprintf(" AND s.warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	if medicineID != "" {
		query += fmt.Sprintf(" AND s.medicine_id = $%d", pos)
		args = append(args, medicineID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY s.updated_at DESC LIMIT NULLIF($%d, 0) OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.MedicineID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountLowStock cuenta medicamentos cuyo total en todas las bodegas queda por
// debajo del umbral. Medicamentos sin fila de stock cuentan como cero.
func (r *StockRepo) CountLowStock(companyID string, threshold decimal.Decimal) (int, error) {
	query := `
		SELECT count(*)
		FROM medicines m
		LEFT JOIN (
			SELECT medicine_id, sum(quantity) AS total
			FROM stock GROUP BY medicine_id
		) s ON s.medicine_id = m.id
		WHERE m.company_id = $1 AND coalesce(s.total, 0) < $2`
	var count int
	err := r.q.QueryRow(context.Background(), query, companyID, threshold).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}
