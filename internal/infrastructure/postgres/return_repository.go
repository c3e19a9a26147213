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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const selectReturn = `
	SELECT id, company_id, shop_id, warehouse_id, medicine_id, quantity,
	       reason, status, requested_by, processed_by, processed_at, created_at
	FROM medicine_returns`

// Create persiste una devolución. Genera id si viene vacío.
func (r *ReturnRepo) Create(ret *entity.MedicineReturn) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	query := `
		INSERT INTO medicine_returns (id, company_id, shop_id, warehouse_id,
			medicine_id, quantity, reason, status, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		ret.ID, ret.CompanyID, ret.ShopID, ret.WarehouseID,
		ret.MedicineID, ret.Quantity, ret.Reason, ret.Status, ret.RequestedBy,
	).Scan(&ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// GetByID busca una devolución por id. Sin fila devuelve (nil, nil).
func (r *ReturnRepo) GetByID(id string) (*entity.MedicineReturn, error) {
	return r.get(id, false)
}

// GetByIDForUpdate busca la devolución bloqueando la fila (FOR UPDATE).
func (r *ReturnRepo) GetByIDForUpdate(id string) (*entity.MedicineReturn, error) {
	return r.get(id, true)
}

func (r *ReturnRepo) get(id string, forUpdate bool) (*entity.MedicineReturn, error) {
	query := selectReturn + ` WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	ret, err := scanReturn(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return ret, nil
}

// UpdateStatus persiste la transición de estado (status, processed_by,
// processed_at) tal como la dejó el caso de uso.
func (r *ReturnRepo) UpdateStatus(ret *entity.MedicineReturn) error {
	query := `
		UPDATE medicine_returns
		SET status = $2, processed_by = $3, processed_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.Status, nullIfEmpty(ret.ProcessedBy), ret.ProcessedAt)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	return nil
}

// ListByCompany lista devoluciones de la empresa, más reciente primero.
// status vacío no filtra; limit <= 0 no limita.
func (r *ReturnRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.MedicineReturn, error) {
	query := selectReturn + ` WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT NULLIF($%d, 0) OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.MedicineReturn
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, ret)
	}
	return list, rows.Err()
}

// CountByStatus cuenta devoluciones de la empresa en un estado dado.
func (r *ReturnRepo) CountByStatus(companyID, status string) (int, error) {
	query := `SELECT count(*) FROM medicine_returns WHERE company_id = $1 AND status = $2`
	var count int
	if err := r.q.QueryRow(context.Background(), query, companyID, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count returns: %w", err)
	}
	return count, nil
}

func scanReturn(row pgx.Row) (*entity.MedicineReturn, error) {
	var ret entity.MedicineReturn
	var processedBy *string
	err := row.Scan(
		&ret.ID, &ret.CompanyID, &ret.ShopID, &ret.WarehouseID, &ret.MedicineID,
		&ret.Quantity, &ret.Reason, &ret.Status, &ret.RequestedBy,
		&processedBy, &ret.ProcessedAt, &ret.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	ret.ProcessedBy = orEmpty(processedBy)
	return &ret, nil
}
