package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// ReturnRepository define el puerto de persistencia para MedicineReturn (DIP).
type ReturnRepository interface {
	Create(ret *entity.MedicineReturn) error
	GetByID(id string) (*entity.MedicineReturn, error)
	// GetByIDForUpdate bloquea la fila para procesar aceptación/rechazo.
	GetByIDForUpdate(id string) (*entity.MedicineReturn, error)
	// UpdateStatus persiste status, processed_by y processed_at.
	UpdateStatus(ret *entity.MedicineReturn) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.MedicineReturn, error)
	CountByStatus(companyID, status string) (int, error)
}
