package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop (DIP).
// La asignación a bodega se modela con métodos explícitos, no como un
// campo más del Update, porque es una acción de servidor con reglas propias.
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	Update(shop *entity.Shop) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Shop, error)
	ListByWarehouse(warehouseID string) ([]*entity.Shop, error)
	CountByWarehouse(warehouseID string) (int, error)
	AssignWarehouse(shopID, warehouseID string) error
	UnassignWarehouse(shopID string) error
	Delete(id string) error
}
