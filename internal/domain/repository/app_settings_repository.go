package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// AppSettingsRepository define el puerto de persistencia para las
// preferencias generales de la consola (una fila por empresa).
type AppSettingsRepository interface {
	GetByCompany(companyID string) (*entity.AppSettings, error)
	Upsert(settings *entity.AppSettings) error
}
