package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL.
// Las entradas son inmutables: solo inserciones y lecturas.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de bitácora.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada de bitácora. before_data y after_data llegan ya
// serializados como JSON ("null" cuando no aplican).
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, company_id, user_id, user_name, entity_type,
			entity_id, action, detail, before_data, after_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		log.ID, log.CompanyID, log.UserID, log.UserName, log.EntityType,
		log.EntityID, log.Action, log.Detail, log.BeforeData, log.AfterData,
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByCompany lista la bitácora de la empresa, más reciente primero.
// entityType y entityID vacíos no filtran; limit <= 0 no limita.
func (r *AuditLogRepo) ListByCompany(companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, company_id, user_id, user_name, entity_type, entity_id,
		       action, detail, before_data, after_data, created_at
		FROM audit_logs WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if entityType != "" {
		query += fmt.Sprintf(" AND entity_type = $%d", pos)
		args = append(args, entityType)
		pos++
	}
	if entityID != "" {
		query += fmt.Sprintf(" AND entity_id = $%d", pos)
		args = append(args, entityID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT NULLIF($%d, 0) OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		err := rows.Scan(
			&l.ID, &l.CompanyID, &l.UserID, &l.UserName, &l.EntityType, &l.EntityID,
			&l.Action, &l.Detail, &l.BeforeData, &l.AfterData, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
