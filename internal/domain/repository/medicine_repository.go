package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

// MedicineRepository define el puerto de persistencia para Medicine (DIP).
type MedicineRepository interface {
	Create(medicine *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Medicine, error)
	Update(medicine *entity.Medicine) error
	// UpdateCost actualiza solo el costo promedio; lo invoca el motor de movimientos.
	UpdateCost(medicineID string, cost decimal.Decimal) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Medicine, error)
	Delete(id string) error
}
