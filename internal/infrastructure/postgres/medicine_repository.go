package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL.
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

// Create persiste un nuevo medicamento. Cost inicia en 0.
func (r *MedicineRepo) Create(medicine *entity.Medicine) error {
	query := `
		INSERT INTO medicines (id, company_id, sku, name, generic_name, category_id, manufacturer, unit_price, cost, tax_rate, unit_measure, reorder_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		medicine.ID, medicine.CompanyID, medicine.SKU, medicine.Name, medicine.GenericName,
		nullIfEmpty(medicine.CategoryID), medicine.Manufacturer, medicine.UnitPrice, medicine.Cost,
		medicine.TaxRate, medicine.UnitMeasure, medicine.ReorderLevel, medicine.CreatedAt, medicine.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID.
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	query := selectMedicine + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get medicine")
}

// GetByCompanyAndSKU obtiene un medicamento por empresa y SKU.
func (r *MedicineRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Medicine, error) {
	query := selectMedicine + ` WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, sku), "get medicine by sku")
}

// Update actualiza un medicamento. No toca sku ni cost (el costo lo mueve el
// motor de inventario).
func (r *MedicineRepo) Update(medicine *entity.Medicine) error {
	query := `
		UPDATE medicines SET name = $2, generic_name = $3, category_id = $4, manufacturer = $5, unit_price = $6, tax_rate = $7, unit_measure = $8, reorder_level = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		medicine.ID, medicine.Name, medicine.GenericName, nullIfEmpty(medicine.CategoryID),
		medicine.Manufacturer, medicine.UnitPrice, medicine.TaxRate, medicine.UnitMeasure,
		medicine.ReorderLevel, medicine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	return nil
}

// UpdateCost actualiza solo el costo promedio (usado por el motor de inventario).
func (r *MedicineRepo) UpdateCost(medicineID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE medicines SET cost = $2, updated_at = now() WHERE id = $1`,
		medicineID, cost,
	)
	if err != nil {
		return fmt.Errorf("update medicine cost: %w", err)
	}
	return nil
}

// ListByCompany lista medicamentos de la empresa. limit <= 0 no limita.
func (r *MedicineRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Medicine, error) {
	query := selectMedicine + `
		WHERE company_id = $1 ORDER BY name LIMIT NULLIF($2, 0) OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina un medicamento por ID.
func (r *MedicineRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete medicine: %w", err)
	}
	return nil
}

const selectMedicine = `
		SELECT id, company_id, sku, name, generic_name, category_id, manufacturer, unit_price, cost, tax_rate, unit_measure, reorder_level, created_at, updated_at
		FROM medicines`

func (r *MedicineRepo) scanOne(row pgx.Row, op string) (*entity.Medicine, error) {
	m, err := scanMedicineRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func scanMedicineRow(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	var categoryID *string
	err := row.Scan(&m.ID, &m.CompanyID, &m.SKU, &m.Name, &m.GenericName, &categoryID,
		&m.Manufacturer, &m.UnitPrice, &m.Cost, &m.TaxRate, &m.UnitMeasure, &m.ReorderLevel,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.CategoryID = orEmpty(categoryID)
	return &m, nil
}

func scanMedicine(rows pgx.Rows) (*entity.Medicine, error) {
	m, err := scanMedicineRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan medicine: %w", err)
	}
	return m, nil
}
