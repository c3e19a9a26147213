package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para la bitácora (DIP).
// Las entradas son inmutables.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	ListByCompany(companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditLog, error)
}
