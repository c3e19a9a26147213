package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL.
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

// Create persiste una nueva droguería (sin bodega asignada).
func (r *ShopRepo) Create(shop *entity.Shop) error {
	query := `
		INSERT INTO shops (id, company_id, name, address, phone, email, warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		shop.ID, shop.CompanyID, shop.Name, shop.Address, shop.Phone, shop.Email,
		nullIfEmpty(shop.WarehouseID), shop.CreatedAt, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID obtiene una droguería por ID.
func (r *ShopRepo) GetByID(id string) (*entity.Shop, error) {
	query := `
		SELECT id, company_id, name, address, phone, email, warehouse_id, created_at, updated_at
		FROM shops WHERE id = $1`
	var s entity.Shop
	var warehouseID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.Phone, &s.Email, &warehouseID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	s.WarehouseID = orEmpty(warehouseID)
	return &s, nil
}

// Update actualiza los datos de contacto. warehouse_id NO se toca aquí:
// la asignación va por AssignWarehouse/UnassignWarehouse.
func (r *ShopRepo) Update(shop *entity.Shop) error {
	query := `
		UPDATE shops SET name = $2, address = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		shop.ID, shop.Name, shop.Address, shop.Phone, shop.Email, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

// ListByCompany lista droguerías de la empresa. limit <= 0 no limita.
func (r *ShopRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Shop, error) {
	query := `
		SELECT id, company_id, name, address, phone, email, warehouse_id, created_at, updated_at
		FROM shops WHERE company_id = $1
		ORDER BY name LIMIT NULLIF($2, 0) OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListByWarehouse lista las droguerías abastecidas por una bodega.
func (r *ShopRepo) ListByWarehouse(warehouseID string) ([]*entity.Shop, error) {
	query := `
		SELECT id, company_id, name, address, phone, email, warehouse_id, created_at, updated_at
		FROM shops WHERE warehouse_id = $1
		ORDER BY name`
	return r.list(query, warehouseID)
}

// CountByWarehouse cuenta las droguerías abastecidas por una bodega.
func (r *ShopRepo) CountByWarehouse(warehouseID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM shops WHERE warehouse_id = $1`, warehouseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count shops by warehouse: %w", err)
	}
	return count, nil
}

// AssignWarehouse fija la bodega de abastecimiento.
func (r *ShopRepo) AssignWarehouse(shopID, warehouseID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE shops SET warehouse_id = $2, updated_at = now() WHERE id = $1`,
		shopID, warehouseID,
	)
	if err != nil {
		return fmt.Errorf("assign warehouse: %w", err)
	}
	return nil
}

// UnassignWarehouse retira la bodega de abastecimiento.
func (r *ShopRepo) UnassignWarehouse(shopID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE shops SET warehouse_id = NULL, updated_at = now() WHERE id = $1`,
		shopID,
	)
	if err != nil {
		return fmt.Errorf("unassign warehouse: %w", err)
	}
	return nil
}

// Delete elimina una droguería por ID.
func (r *ShopRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	return nil
}

func (r *ShopRepo) list(query string, args ...any) ([]*entity.Shop, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shop
	for rows.Next() {
		var s entity.Shop
		var warehouseID *string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.Phone, &s.Email,
			&warehouseID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		s.WarehouseID = orEmpty(warehouseID)
		list = append(list, &s)
	}
	return list, rows.Err()
}
