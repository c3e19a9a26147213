package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// TaxSettingsRepository define el puerto de persistencia para la
// configuración tributaria (una fila por empresa, último escritor gana).
type TaxSettingsRepository interface {
	GetByCompany(companyID string) (*entity.TaxSettings, error)
	Upsert(settings *entity.TaxSettings) error
}
