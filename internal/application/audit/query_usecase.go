package audit

import (
	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// QueryUseCase lecturas de bitácora (solo admin).
type QueryUseCase struct {
	repo repository.AuditLogRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.AuditLogRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List lista la bitácora de la empresa, opcionalmente filtrada por entidad.
func (uc *QueryUseCase) List(companyID, entityType, entityID string, limit, offset int) (*dto.AuditLogListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.AuditLogResponse{
			ID:         l.ID,
			UserID:     l.UserID,
			UserName:   l.UserName,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Action:     l.Action,
			Detail:     l.Detail,
			BeforeData: l.BeforeData,
			AfterData:  l.AfterData,
			CreatedAt:  l.CreatedAt,
		})
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
