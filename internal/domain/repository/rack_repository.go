package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// RackRepository define el puerto de persistencia para Rack (DIP).
type RackRepository interface {
	Create(rack *entity.Rack) error
	GetByID(id string) (*entity.Rack, error)
	Update(rack *entity.Rack) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Rack, error)
	ListByWarehouse(warehouseID string) ([]*entity.Rack, error)
	// CountByWarehouse se usa para impedir borrar bodegas con estanterías.
	CountByWarehouse(warehouseID string) (int, error)
	Delete(id string) error
}
