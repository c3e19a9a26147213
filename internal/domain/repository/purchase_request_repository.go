package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// PurchaseRequestFilter filtra el listado de solicitudes. Campos vacíos
// no filtran.
type PurchaseRequestFilter struct {
	Status string
	ShopID string
	Limit  int
	Offset int
}

// PurchaseRequestRepository define el puerto de persistencia para
// PurchaseRequest y sus líneas (DIP). Create y Update escriben
// encabezado y líneas; GetByID siempre devuelve las líneas ordenadas
// por sort_order.
type PurchaseRequestRepository interface {
	Create(request *entity.PurchaseRequest) error
	GetByID(id string) (*entity.PurchaseRequest, error)
	// GetByIDForUpdate bloquea el encabezado (SELECT FOR UPDATE) para
	// transiciones de estado dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.PurchaseRequest, error)
	Update(request *entity.PurchaseRequest) error
	// UpdateStatus persiste status, approved_by, approved_at,
	// rejection_reason y updated_at tomados del encabezado.
	UpdateStatus(request *entity.PurchaseRequest) error
	ListByCompany(companyID string, filter PurchaseRequestFilter) ([]*entity.PurchaseRequest, error)
	CountByStatus(companyID, status string) (int, error)
	Delete(id string) error
}
