package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/inventory"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/lookup"
)

// ReturnUseCase maneja devoluciones de medicamentos de droguería a bodega.
// Aceptar una devolución reingresa la cantidad al stock de la bodega al
// costo promedio vigente del medicamento, en la misma transacción que
// marca la devolución como procesada.
type ReturnUseCase struct {
	returnRepo    repository.ReturnRepository
	shopRepo      repository.ShopRepository
	warehouseRepo repository.WarehouseRepository
	medicineRepo  repository.MedicineRepository
	txRunner      inventory.TxRunner
	movements     *inventory.MovementUseCase
	recorder      *audit.Recorder
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(
	returnRepo repository.ReturnRepository,
	shopRepo repository.ShopRepository,
	warehouseRepo repository.WarehouseRepository,
	medicineRepo repository.MedicineRepository,
	txRunner inventory.TxRunner,
	movements *inventory.MovementUseCase,
	recorder *audit.Recorder,
) *ReturnUseCase {
	return &ReturnUseCase{
		returnRepo:    returnRepo,
		shopRepo:      shopRepo,
		warehouseRepo: warehouseRepo,
		medicineRepo:  medicineRepo,
		txRunner:      txRunner,
		movements:     movements,
		recorder:      recorder,
	}
}

// Create registra una devolución en estado pending.
func (uc *ReturnUseCase) Create(companyID, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	shop, err := uc.shopRepo.GetByID(in.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	medicine, err := uc.medicineRepo.GetByID(in.MedicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil || medicine.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	ret := &entity.MedicineReturn{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ShopID:      in.ShopID,
		WarehouseID: in.WarehouseID,
		MedicineID:  in.MedicineID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Status:      entity.ReturnStatusPending,
		RequestedBy: userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.returnRepo.Create(ret); err != nil {
		return nil, err
	}
	return uc.toResponse(ret)
}

// GetByID obtiene una devolución de la empresa.
func (uc *ReturnUseCase) GetByID(companyID, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil || ret.CompanyID != companyID {
		return nil, nil
	}
	return uc.toResponse(ret)
}

// List lista devoluciones filtradas por estado.
func (uc *ReturnUseCase) List(companyID, status string, page dto.PageRequest) (*dto.ReturnListResponse, error) {
	if status != "" && !entity.ValidReturnStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.returnRepo.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	names, err := uc.loadNameIndexes(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReturnResponse, 0, len(list))
	for _, ret := range list {
		items = append(items, *buildReturnResponse(ret, names))
	}
	return &dto.ReturnListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Accept acepta una devolución pendiente y reingresa la cantidad a la bodega
// como una entrada (IN) al costo promedio vigente, todo en una transacción.
func (uc *ReturnUseCase) Accept(ctx context.Context, companyID, userID, id string) (*dto.ReturnResponse, error) {
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		ret, err := r.Returns.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if ret == nil || ret.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if ret.IsTerminal() {
			return domain.ErrInvalidStatus
		}
		medicine, err := r.Medicines.GetByID(ret.MedicineID)
		if err != nil {
			return err
		}
		if medicine == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		if err := uc.movements.RegisterINInTx(r, medicine, ret.WarehouseID, userID,
			ret.Quantity, medicine.Cost, now, ret.ID, "return:"+ret.ID); err != nil {
			return err
		}

		ret.Status = entity.ReturnStatusAccepted
		ret.ProcessedBy = userID
		ret.ProcessedAt = &now
		return r.Returns.UpdateStatus(ret)
	})
	if err != nil {
		return nil, err
	}

	resp, err := uc.GetByID(companyID, id)
	if err != nil || resp == nil {
		return resp, err
	}
	uc.recorder.Record(audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		EntityType: "return",
		EntityID:   id,
		Action:     entity.AuditActionReturnAccepted,
		Detail:     fmt.Sprintf("devolución de %s aceptada, reingresa a %s", resp.MedicineName, resp.WarehouseName),
		Before:     map[string]string{"status": entity.ReturnStatusPending},
		After:      map[string]string{"status": entity.ReturnStatusAccepted},
	})
	return resp, nil
}

// Reject rechaza una devolución pendiente sin tocar el stock. El motivo no
// se guarda en la devolución; queda en la bitácora.
func (uc *ReturnUseCase) Reject(ctx context.Context, companyID, userID, id, reason string) (*dto.ReturnResponse, error) {
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		ret, err := r.Returns.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if ret == nil || ret.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if ret.IsTerminal() {
			return domain.ErrInvalidStatus
		}
		now := time.Now()
		ret.Status = entity.ReturnStatusRejected
		ret.ProcessedBy = userID
		ret.ProcessedAt = &now
		return r.Returns.UpdateStatus(ret)
	})
	if err != nil {
		return nil, err
	}

	resp, err := uc.GetByID(companyID, id)
	if err != nil || resp == nil {
		return resp, err
	}
	detail := fmt.Sprintf("devolución de %s rechazada", resp.MedicineName)
	if reason != "" {
		detail += ": " + reason
	}
	uc.recorder.Record(audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		EntityType: "return",
		EntityID:   id,
		Action:     entity.AuditActionReturnRejected,
		Detail:     detail,
		Before:     map[string]string{"status": entity.ReturnStatusPending},
		After:      map[string]string{"status": entity.ReturnStatusRejected},
	})
	return resp, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *ReturnUseCase) loadNameIndexes(companyID string) (*nameIndexes, error) {
	shops, err := uc.shopRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.warehouseRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	medicines, err := uc.medicineRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	idx := &nameIndexes{
		shops:      make(map[string]string, len(shops)),
		warehouses: make(map[string]string, len(warehouses)),
		medicines:  make(map[string]string, len(medicines)),
	}
	for _, s := range shops {
		idx.shops[s.ID] = s.Name
	}
	for _, w := range warehouses {
		idx.warehouses[w.ID] = w.Name
	}
	for _, m := range medicines {
		idx.medicines[m.ID] = m.Name
	}
	return idx, nil
}

func (uc *ReturnUseCase) toResponse(ret *entity.MedicineReturn) (*dto.ReturnResponse, error) {
	names, err := uc.loadNameIndexes(ret.CompanyID)
	if err != nil {
		return nil, err
	}
	return buildReturnResponse(ret, names), nil
}

func buildReturnResponse(ret *entity.MedicineReturn, names *nameIndexes) *dto.ReturnResponse {
	return &dto.ReturnResponse{
		ID:            ret.ID,
		CompanyID:     ret.CompanyID,
		ShopID:        ret.ShopID,
		ShopName:      lookup.Name(names.shops, ret.ShopID),
		WarehouseID:   ret.WarehouseID,
		WarehouseName: lookup.Name(names.warehouses, ret.WarehouseID),
		MedicineID:    ret.MedicineID,
		MedicineName:  lookup.Name(names.medicines, ret.MedicineID),
		Quantity:      ret.Quantity,
		Reason:        ret.Reason,
		Status:        ret.Status,
		RequestedBy:   ret.RequestedBy,
		ProcessedBy:   ret.ProcessedBy,
		ProcessedAt:   ret.ProcessedAt,
		CreatedAt:     ret.CreatedAt,
	}
}
