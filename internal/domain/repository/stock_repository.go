package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por
// bodega+medicamento. Si no existe fila, Get y GetForUpdate devuelven un
// stock en cero, nunca nil. Las escrituras ocurren dentro de transacciones.
type StockRepository interface {
	Get(medicineID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(medicineID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// ListByCompany devuelve las existencias de la empresa; warehouseID y
	// medicineID vacíos no filtran.
	ListByCompany(companyID, warehouseID, medicineID string, limit, offset int) ([]*entity.Stock, error)
	// CountLowStock cuenta medicamentos cuyo stock total queda por debajo
	// del umbral configurado; alimenta el resumen del tablero.
	CountLowStock(companyID string, threshold decimal.Decimal) (int, error)
}
