package inventory

import (
	"context"

	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a la transacción en curso. El
// motor de movimientos usa Movements/Stock/Medicines; los flujos de
// solicitudes y devoluciones añaden los suyos para transicionar estado y
// mover stock en la misma transacción.
type TxRepos struct {
	Movements repository.StockMovementRepository
	Stock     repository.StockRepository
	Medicines repository.MedicineRepository
	Requests  repository.PurchaseRequestRepository
	Returns   repository.ReturnRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: Commit si fn devuelve nil, Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
