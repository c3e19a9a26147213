package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
// Los movimientos son inmutables: solo inserciones y lecturas.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const selectMovement = `
	SELECT id, company_id, transaction_id, medicine_id, warehouse_id, type,
	       quantity, unit_cost, total_cost, reference, notes, created_by, created_at
	FROM stock_movements`

// Create inserta un movimiento. Genera id si viene vacío.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, company_id, transaction_id, medicine_id,
			warehouse_id, type, quantity, unit_cost, total_cost, reference, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.CompanyID, movement.TransactionID, movement.MedicineID,
		movement.WarehouseID, movement.Type, movement.Quantity, movement.UnitCost,
		movement.TotalCost, movement.Reference, movement.Notes, movement.CreatedBy,
	).Scan(&movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID busca un movimiento por id. Sin fila devuelve (nil, nil).
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := selectMovement + ` WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByCompany devuelve el historial de la empresa, más reciente primero.
// Los campos vacíos del filtro no filtran; Limit <= 0 no limita.
func (r *StockMovementRepo) ListByCompany(companyID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := selectMovement + ` WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.MedicineID != "" {
		query += fmt.Sprintf(" AND medicine_id = $%d", pos)
		args = append(args, filter.MedicineID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT NULLIF($%d, 0) OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.TransactionID, &m.MedicineID, &m.WarehouseID, &m.Type,
		&m.Quantity, &m.UnitCost, &m.TotalCost, &m.Reference, &m.Notes, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
