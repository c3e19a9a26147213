package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. parent_id vacío se guarda como NULL.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, company_id, name, description, parent_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.CompanyID, category.Name, category.Description,
		nullIfEmpty(category.ParentID), category.IsActive, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `
		SELECT id, company_id, name, description, parent_id, is_active, created_at, updated_at
		FROM categories WHERE id = $1`
	var c entity.Category
	var parentID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Description, &parentID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.ParentID = orEmpty(parentID)
	return &c, nil
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, parent_id = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description,
		nullIfEmpty(category.ParentID), category.IsActive, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// ListByCompany lista categorías de la empresa. limit <= 0 no limita.
func (r *CategoryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, company_id, name, description, parent_id, is_active, created_at, updated_at
		FROM categories WHERE company_id = $1
		ORDER BY name LIMIT NULLIF($2, 0) OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListTopLevel devuelve las categorías sin padre: el conjunto seleccionable.
func (r *CategoryRepo) ListTopLevel(companyID string) ([]*entity.Category, error) {
	query := `
		SELECT id, company_id, name, description, parent_id, is_active, created_at, updated_at
		FROM categories WHERE company_id = $1 AND parent_id IS NULL
		ORDER BY name`
	return r.list(query, companyID)
}

// ListByParent devuelve las hijas directas de una categoría.
func (r *CategoryRepo) ListByParent(companyID, parentID string) ([]*entity.Category, error) {
	query := `
		SELECT id, company_id, name, description, parent_id, is_active, created_at, updated_at
		FROM categories WHERE company_id = $1 AND parent_id = $2
		ORDER BY name`
	return r.list(query, companyID, parentID)
}

// Delete elimina una categoría. Con hijas, la FK RESTRICT la protege también
// a nivel de base de datos.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) list(query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID *string
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &parentID,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = orEmpty(parentID)
		list = append(list, &c)
	}
	return list, rows.Err()
}
