// Package audit escribe y consulta la bitácora de los flujos sensibles:
// transiciones de solicitudes, devoluciones, asignación de droguerías y
// cambios de configuración.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/logger"
)

// Entry describe una operación a auditar. Before y After se serializan a
// JSON; nil queda como "null".
type Entry struct {
	CompanyID  string
	UserID     string
	EntityType string
	EntityID   string
	Action     string
	Detail     string
	Before     any
	After      any
}

// Recorder persiste entradas de bitácora en el mejor esfuerzo: un fallo se
// registra en el log con nivel warn y jamás revierte la operación auditada.
type Recorder struct {
	repo     repository.AuditLogRepository
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditLogRepository, userRepo repository.UserRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, userRepo: userRepo, log: log}
}

// Record escribe la entrada. El nombre del usuario se desnormaliza aquí para
// que la bitácora sobreviva a la eliminación del usuario.
func (r *Recorder) Record(e Entry) {
	userName := ""
	if user, err := r.userRepo.GetByID(e.UserID); err == nil && user != nil {
		userName = user.Name
	}

	log := &entity.AuditLog{
		ID:         uuid.New().String(),
		CompanyID:  e.CompanyID,
		UserID:     e.UserID,
		UserName:   userName,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		Detail:     e.Detail,
		BeforeData: marshalOrNull(e.Before),
		AfterData:  marshalOrNull(e.After),
		CreatedAt:  time.Now(),
	}
	if err := r.repo.Create(log); err != nil {
		r.log.Warn().Err(err).
			Str("action", e.Action).
			Str("entity_type", e.EntityType).
			Str("entity_id", e.EntityID).
			Msg("bitácora: no se pudo guardar la entrada")
	}
}

func marshalOrNull(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
