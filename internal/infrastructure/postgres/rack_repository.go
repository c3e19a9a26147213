package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.RackRepository = (*RackRepo)(nil)

// RackRepo implementación del puerto RackRepository sobre PostgreSQL.
type RackRepo struct {
	q Querier
}

// NewRackRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRackRepository(q Querier) *RackRepo {
	return &RackRepo{q: q}
}

// Create persiste una nueva estantería. warehouse_id vacío se guarda como NULL.
func (r *RackRepo) Create(rack *entity.Rack) error {
	query := `
		INSERT INTO racks (id, company_id, rack_name, rack_number, warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rack.ID, rack.CompanyID, rack.RackName, rack.RackNumber,
		nullIfEmpty(rack.WarehouseID), rack.CreatedAt, rack.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rack: %w", err)
	}
	return nil
}

// GetByID obtiene una estantería por ID.
func (r *RackRepo) GetByID(id string) (*entity.Rack, error) {
	query := `
		SELECT id, company_id, rack_name, rack_number, warehouse_id, created_at, updated_at
		FROM racks WHERE id = $1`
	var rack entity.Rack
	var warehouseID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rack.ID, &rack.CompanyID, &rack.RackName, &rack.RackNumber, &warehouseID,
		&rack.CreatedAt, &rack.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rack: %w", err)
	}
	rack.WarehouseID = orEmpty(warehouseID)
	return &rack, nil
}

// Update actualiza una estantería existente.
func (r *RackRepo) Update(rack *entity.Rack) error {
	query := `
		UPDATE racks SET rack_name = $2, rack_number = $3, warehouse_id = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rack.ID, rack.RackName, rack.RackNumber, nullIfEmpty(rack.WarehouseID), rack.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rack: %w", err)
	}
	return nil
}

// ListByCompany lista estanterías de la empresa. limit <= 0 no limita.
func (r *RackRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Rack, error) {
	query := `
		SELECT id, company_id, rack_name, rack_number, warehouse_id, created_at, updated_at
		FROM racks WHERE company_id = $1
		ORDER BY rack_number LIMIT NULLIF($2, 0) OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListByWarehouse lista las estanterías de una bodega.
func (r *RackRepo) ListByWarehouse(warehouseID string) ([]*entity.Rack, error) {
	query := `
		SELECT id, company_id, rack_name, rack_number, warehouse_id, created_at, updated_at
		FROM racks WHERE warehouse_id = $1
		ORDER BY rack_number`
	return r.list(query, warehouseID)
}

// CountByWarehouse cuenta las estanterías de una bodega (guard de borrado).
func (r *RackRepo) CountByWarehouse(warehouseID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM racks WHERE warehouse_id = $1`, warehouseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count racks by warehouse: %w", err)
	}
	return count, nil
}

// Delete elimina una estantería por ID.
func (r *RackRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM racks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rack: %w", err)
	}
	return nil
}

func (r *RackRepo) list(query string, args ...any) ([]*entity.Rack, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list racks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rack
	for rows.Next() {
		var rack entity.Rack
		var warehouseID *string
		if err := rows.Scan(&rack.ID, &rack.CompanyID, &rack.RackName, &rack.RackNumber,
			&warehouseID, &rack.CreatedAt, &rack.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rack: %w", err)
		}
		rack.WarehouseID = orEmpty(warehouseID)
		list = append(list, &rack)
	}
	return list, rows.Err()
}
