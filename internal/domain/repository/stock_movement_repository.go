package repository

import (
	"time"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

// MovementFilter filtra el historial de movimientos. Campos vacíos y
// fechas nil no filtran.
type MovementFilter struct {
	WarehouseID string
	MedicineID  string
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// StockMovementRepository define el puerto de persistencia para movimientos
// de inventario (DIP). Los movimientos son inmutables: solo Create y lecturas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByCompany(companyID string, filter MovementFilter) ([]*entity.StockMovement, error)
}
