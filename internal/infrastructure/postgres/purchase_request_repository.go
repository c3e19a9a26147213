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

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementación de PurchaseRequestRepository sobre
// PostgreSQL (usable con pool o tx). Las escrituras de encabezado+líneas se
// ejecutan dentro de la transacción que aporte el Querier.
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el adaptador de solicitudes.
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

const selectRequest = `
	SELECT id, company_id, shop_id, warehouse_id, priority, status, notes,
	       requested_by, approved_by, approved_at, rejection_reason, created_at, updated_at
	FROM purchase_requests`

// Create persiste el encabezado y sus líneas. Genera ids si vienen vacíos.
func (r *PurchaseRequestRepo) Create(request *entity.PurchaseRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_requests (id, company_id, shop_id, warehouse_id,
			priority, status, notes, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		request.ID, request.CompanyID, request.ShopID, request.WarehouseID,
		request.Priority, request.Status, request.Notes, request.RequestedBy,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return r.insertItems(request.ID, request.Items)
}

// GetByID obtiene una solicitud completa (encabezado + líneas por sort_order).
// Sin fila devuelve (nil, nil).
func (r *PurchaseRequestRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	return r.getHeader(id, false)
}

// GetByIDForUpdate obtiene la solicitud bloqueando el encabezado (FOR UPDATE).
func (r *PurchaseRequestRepo) GetByIDForUpdate(id string) (*entity.PurchaseRequest, error) {
	return r.getHeader(id, true)
}

func (r *PurchaseRequestRepo) getHeader(id string, forUpdate bool) (*entity.PurchaseRequest, error) {
	query := selectRequest + ` WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	req, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}
	if err := r.loadItems(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Update persiste los campos editables del encabezado y reemplaza las líneas
// completas. El estado no se toca aquí (ver UpdateStatus).
func (r *PurchaseRequestRepo) Update(request *entity.PurchaseRequest) error {
	query := `
		UPDATE purchase_requests
		SET shop_id = $2, warehouse_id = $3, priority = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.ShopID, request.WarehouseID,
		request.Priority, request.Notes, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase request: %w", err)
	}
	del := `DELETE FROM purchase_request_items WHERE request_id = $1`
	if _, err := r.q.Exec(context.Background(), del, request.ID); err != nil {
		return fmt.Errorf("clear purchase request items: %w", err)
	}
	return r.insertItems(request.ID, request.Items)
}

// UpdateStatus persiste la transición de estado con sus campos asociados,
// tomados del encabezado tal como los dejó el caso de uso.
func (r *PurchaseRequestRepo) UpdateStatus(request *entity.PurchaseRequest) error {
	query := `
		UPDATE purchase_requests
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.Status, nullIfEmpty(request.ApprovedBy),
		request.ApprovedAt, request.RejectionReason, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase request status: %w", err)
	}
	return nil
}

// ListByCompany lista solicitudes de la empresa con sus líneas, más reciente
// primero. Campos vacíos del filtro no filtran; Limit <= 0 no limita.
func (r *PurchaseRequestRepo) ListByCompany(companyID string, filter repository.PurchaseRequestFilter) ([]*entity.PurchaseRequest, error) {
	query := selectRequest + ` WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.ShopID != "" {
		query += fmt.Sprintf(" AND shop_id = $%d", pos)
		args = append(args, filter.ShopID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT NULLIF($%d, 0) OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		list = append(list, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range list {
		if err := r.loadItems(req); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// CountByStatus cuenta solicitudes de la empresa en un estado dado.
func (r *PurchaseRequestRepo) CountByStatus(companyID, status string) (int, error) {
	query := `SELECT count(*) FROM purchase_requests WHERE company_id = $1 AND status = $2`
	var count int
	if err := r.q.QueryRow(context.Background(), query, companyID, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count purchase requests: %w", err)
	}
	return count, nil
}

// Delete elimina la solicitud; las líneas caen en cascada.
func (r *PurchaseRequestRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase request: %w", err)
	}
	return nil
}

func (r *PurchaseRequestRepo) insertItems(requestID string, items []entity.PurchaseRequestItem) error {
	query := `
		INSERT INTO purchase_request_items (id, request_id, medicine_id, quantity_requested, sort_order)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.RequestID = requestID
		_, err := r.q.Exec(context.Background(), query,
			it.ID, it.RequestID, it.MedicineID, it.QuantityRequested, it.SortOrder)
		if err != nil {
			return fmt.Errorf("insert purchase request item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseRequestRepo) loadItems(req *entity.PurchaseRequest) error {
	query := `
		SELECT id, request_id, medicine_id, quantity_requested, sort_order
		FROM purchase_request_items WHERE request_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(context.Background(), query, req.ID)
	if err != nil {
		return fmt.Errorf("list purchase request items: %w", err)
	}
	defer rows.Close()
	req.Items = nil
	for rows.Next() {
		var it entity.PurchaseRequestItem
		if err := rows.Scan(&it.ID, &it.RequestID, &it.MedicineID, &it.QuantityRequested, &it.SortOrder); err != nil {
			return fmt.Errorf("scan purchase request item: %w", err)
		}
		req.Items = append(req.Items, it)
	}
	return rows.Err()
}

func scanRequest(row pgx.Row) (*entity.PurchaseRequest, error) {
	var req entity.PurchaseRequest
	var approvedBy *string
	err := row.Scan(
		&req.ID, &req.CompanyID, &req.ShopID, &req.WarehouseID, &req.Priority,
		&req.Status, &req.Notes, &req.RequestedBy, &approvedBy, &req.ApprovedAt,
		&req.RejectionReason, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.ApprovedBy = orEmpty(approvedBy)
	return &req, nil
}
