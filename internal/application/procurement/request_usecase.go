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

// PurchaseRequestUseCase maneja el ciclo completo de una solicitud de
// compra. Las transiciones de estado bloquean el encabezado (SELECT FOR
// UPDATE); el despacho descuenta stock con el motor de movimientos dentro
// de la misma transacción.
type PurchaseRequestUseCase struct {
	requestRepo   repository.PurchaseRequestRepository
	shopRepo      repository.ShopRepository
	warehouseRepo repository.WarehouseRepository
	medicineRepo  repository.MedicineRepository
	stockRepo     repository.StockRepository
	txRunner      inventory.TxRunner
	movements     *inventory.MovementUseCase
	notifier      Notifier
	recorder      *audit.Recorder
}

// NewPurchaseRequestUseCase construye el caso de uso.
func NewPurchaseRequestUseCase(
	requestRepo repository.PurchaseRequestRepository,
	shopRepo repository.ShopRepository,
	warehouseRepo repository.WarehouseRepository,
	medicineRepo repository.MedicineRepository,
	stockRepo repository.StockRepository,
	txRunner inventory.TxRunner,
	movements *inventory.MovementUseCase,
	notifier Notifier,
	recorder *audit.Recorder,
) *PurchaseRequestUseCase {
	return &PurchaseRequestUseCase{
		requestRepo:   requestRepo,
		shopRepo:      shopRepo,
		warehouseRepo: warehouseRepo,
		medicineRepo:  medicineRepo,
		stockRepo:     stockRepo,
		txRunner:      txRunner,
		movements:     movements,
		notifier:      notifier,
		recorder:      recorder,
	}
}

// Create registra una solicitud en estado pending con al menos una línea.
func (uc *PurchaseRequestUseCase) Create(companyID, userID string, in dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
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

	priority := in.Priority
	if priority == "" {
		priority = entity.RequestPriorityNormal
	}
	if !entity.ValidRequestPriority(priority) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	req := &entity.PurchaseRequest{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ShopID:      in.ShopID,
		WarehouseID: in.WarehouseID,
		Priority:    priority,
		Status:      entity.RequestStatusPending,
		Notes:       in.Notes,
		RequestedBy: userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items, err := uc.buildItems(companyID, req.ID, in.Items)
	if err != nil {
		return nil, err
	}
	req.Items = items

	if err := uc.requestRepo.Create(req); err != nil {
		return nil, err
	}
	return uc.toResponse(req)
}

// GetByID obtiene una solicitud con disponibilidad calculada al momento.
func (uc *PurchaseRequestUseCase) GetByID(companyID, id string) (*dto.PurchaseRequestResponse, error) {
	req, err := uc.requestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil || req.CompanyID != companyID {
		return nil, nil
	}
	return uc.toResponse(req)
}

// List lista solicitudes filtradas por estado y droguería.
func (uc *PurchaseRequestUseCase) List(companyID string, filter repository.PurchaseRequestFilter) (*dto.PurchaseRequestListResponse, error) {
	if filter.Status != "" && !entity.ValidRequestStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.requestRepo.ListByCompany(companyID, filter)
	if err != nil {
		return nil, err
	}

	names, err := uc.loadNameIndexes(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseRequestResponse, 0, len(list))
	for _, req := range list {
		resp, err := uc.buildResponse(req, names)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.PurchaseRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Update edita una solicitud pendiente. Si vienen líneas, reemplazan por
// completo a las anteriores.
func (uc *PurchaseRequestUseCase) Update(companyID string, id string, in dto.UpdatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	req, err := uc.requestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil || req.CompanyID != companyID {
		return nil, nil
	}
	if req.Status != entity.RequestStatusPending {
		return nil, domain.ErrInvalidStatus
	}

	if in.Priority != nil {
		if !entity.ValidRequestPriority(*in.Priority) {
			return nil, domain.ErrInvalidInput
		}
		req.Priority = *in.Priority
	}
	if in.Notes != nil {
		req.Notes = *in.Notes
	}
	if len(in.Items) > 0 {
		items, err := uc.buildItems(companyID, req.ID, in.Items)
		if err != nil {
			return nil, err
		}
		req.Items = items
	}
	req.UpdatedAt = time.Now()

	if err := uc.requestRepo.Update(req); err != nil {
		return nil, err
	}
	return uc.toResponse(req)
}

// Delete elimina una solicitud pendiente o rechazada.
func (uc *PurchaseRequestUseCase) Delete(companyID, id string) error {
	req, err := uc.requestRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil || req.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if req.Status != entity.RequestStatusPending && req.Status != entity.RequestStatusRejected {
		return domain.ErrInvalidStatus
	}
	return uc.requestRepo.Delete(id)
}

// Approve aprueba una solicitud pendiente. El servidor vuelve a validar la
// disponibilidad contra el stock vigente dentro de la transacción: si alguna
// línea no alcanza, la aprobación se rechaza completa con ErrStockUnavailable
// y el estado no cambia.
func (uc *PurchaseRequestUseCase) Approve(ctx context.Context, companyID, userID, id string) (*dto.PurchaseRequestResponse, error) {
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Requests.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil || req.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPending {
			return domain.ErrInvalidStatus
		}
		for _, it := range req.Items {
			stock, err := r.Stock.Get(it.MedicineID, req.WarehouseID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(it.QuantityRequested) {
				return domain.ErrStockUnavailable
			}
		}
		now := time.Now()
		req.Status = entity.RequestStatusApproved
		req.ApprovedBy = userID
		req.ApprovedAt = &now
		req.UpdatedAt = now
		return r.Requests.UpdateStatus(req)
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
		EntityType: "purchase_request",
		EntityID:   id,
		Action:     entity.AuditActionRequestApproved,
		Detail:     fmt.Sprintf("solicitud de %s aprobada", resp.ShopName),
		Before:     map[string]string{"status": entity.RequestStatusPending},
		After:      map[string]string{"status": entity.RequestStatusApproved},
	})
	uc.notifyShop(resp, "")
	return resp, nil
}

// Reject rechaza una solicitud pendiente dejando el motivo.
func (uc *PurchaseRequestUseCase) Reject(ctx context.Context, companyID, userID, id, reason string) (*dto.PurchaseRequestResponse, error) {
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Requests.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil || req.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPending {
			return domain.ErrInvalidStatus
		}
		now := time.Now()
		req.Status = entity.RequestStatusRejected
		req.ApprovedBy = userID
		req.RejectionReason = reason
		req.UpdatedAt = now
		return r.Requests.UpdateStatus(req)
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
		EntityType: "purchase_request",
		EntityID:   id,
		Action:     entity.AuditActionRequestRejected,
		Detail:     fmt.Sprintf("solicitud de %s rechazada: %s", resp.ShopName, reason),
		Before:     map[string]string{"status": entity.RequestStatusPending},
		After:      map[string]string{"status": entity.RequestStatusRejected},
	})
	uc.notifyShop(resp, reason)
	return resp, nil
}

// Cancel permite a la droguería retirar una solicitud que sigue pendiente.
func (uc *PurchaseRequestUseCase) Cancel(ctx context.Context, companyID, userID, id string) (*dto.PurchaseRequestResponse, error) {
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Requests.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil || req.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPending {
			return domain.ErrInvalidStatus
		}
		req.Status = entity.RequestStatusCancelled
		req.UpdatedAt = time.Now()
		return r.Requests.UpdateStatus(req)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, id)
}

// Dispatch despacha una solicitud aprobada: una salida (OUT) por línea con
// el motor de movimientos, todas dentro de una sola transacción. Si alguna
// línea no tiene stock suficiente al momento del despacho, la transacción
// completa se revierte.
func (uc *PurchaseRequestUseCase) Dispatch(ctx context.Context, companyID, userID, id string) (*dto.PurchaseRequestResponse, error) {
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Requests.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil || req.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusApproved {
			return domain.ErrInvalidStatus
		}

		now := time.Now()
		reference := "purchase_request:" + req.ID
		for _, it := range req.Items {
			medicine, err := r.Medicines.GetByID(it.MedicineID)
			if err != nil {
				return err
			}
			if medicine == nil {
				return domain.ErrNotFound
			}
			if err := uc.movements.RegisterOUTInTx(r, medicine, req.WarehouseID, userID,
				it.QuantityRequested, now, req.ID, reference); err != nil {
				return err
			}
		}

		req.Status = entity.RequestStatusDispatched
		req.UpdatedAt = now
		return r.Requests.UpdateStatus(req)
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
		EntityType: "purchase_request",
		EntityID:   id,
		Action:     entity.AuditActionRequestDispatched,
		Detail:     fmt.Sprintf("solicitud de %s despachada desde %s", resp.ShopName, resp.WarehouseName),
		Before:     map[string]string{"status": entity.RequestStatusApproved},
		After:      map[string]string{"status": entity.RequestStatusDispatched},
	})
	return resp, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// buildItems valida y materializa las líneas: cantidad positiva y
// medicamento existente de la misma empresa.
func (uc *PurchaseRequestUseCase) buildItems(companyID, requestID string, in []dto.RequestItemInput) ([]entity.PurchaseRequestItem, error) {
	items := make([]entity.PurchaseRequestItem, 0, len(in))
	for i, line := range in {
		if !line.QuantityRequested.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		medicine, err := uc.medicineRepo.GetByID(line.MedicineID)
		if err != nil {
			return nil, err
		}
		if medicine == nil || medicine.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.PurchaseRequestItem{
			ID:                uuid.New().String(),
			RequestID:         requestID,
			MedicineID:        line.MedicineID,
			QuantityRequested: line.QuantityRequested,
			SortOrder:         i,
		})
	}
	return items, nil
}

type nameIndexes struct {
	shops      map[string]string
	warehouses map[string]string
	medicines  map[string]string
}

func (uc *PurchaseRequestUseCase) loadNameIndexes(companyID string) (*nameIndexes, error) {
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

// toResponse enriquece una sola solicitud (carga los índices de nombres).
func (uc *PurchaseRequestUseCase) toResponse(req *entity.PurchaseRequest) (*dto.PurchaseRequestResponse, error) {
	names, err := uc.loadNameIndexes(req.CompanyID)
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(req, names)
}

// buildResponse calcula la disponibilidad por línea contra el stock vigente
// de la bodega y resuelve los nombres relacionados.
func (uc *PurchaseRequestUseCase) buildResponse(req *entity.PurchaseRequest, names *nameIndexes) (*dto.PurchaseRequestResponse, error) {
	items := make([]dto.RequestItemResponse, 0, len(req.Items))
	canApprove := true
	for _, it := range req.Items {
		stock, err := uc.stockRepo.Get(it.MedicineID, req.WarehouseID)
		if err != nil {
			return nil, err
		}
		available := stock.Quantity
		ok := available.GreaterThanOrEqual(it.QuantityRequested)
		if !ok {
			canApprove = false
		}
		items = append(items, dto.RequestItemResponse{
			ID:                it.ID,
			MedicineID:        it.MedicineID,
			MedicineName:      lookup.Name(names.medicines, it.MedicineID),
			QuantityRequested: it.QuantityRequested,
			AvailableStock:    available,
			IsStockAvailable:  ok,
			SortOrder:         it.SortOrder,
		})
	}

	return &dto.PurchaseRequestResponse{
		ID:              req.ID,
		CompanyID:       req.CompanyID,
		ShopID:          req.ShopID,
		ShopName:        lookup.Name(names.shops, req.ShopID),
		WarehouseID:     req.WarehouseID,
		WarehouseName:   lookup.Name(names.warehouses, req.WarehouseID),
		Priority:        req.Priority,
		Status:          req.Status,
		Notes:           req.Notes,
		RequestedBy:     req.RequestedBy,
		ApprovedBy:      req.ApprovedBy,
		ApprovedAt:      req.ApprovedAt,
		RejectionReason: req.RejectionReason,
		Items:           items,
		CanApprove:      canApprove && req.Status == entity.RequestStatusPending,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}, nil
}

// notifyShop envía el aviso a la droguería si tiene correo registrado.
func (uc *PurchaseRequestUseCase) notifyShop(resp *dto.PurchaseRequestResponse, reason string) {
	shop, err := uc.shopRepo.GetByID(resp.ShopID)
	if err != nil || shop == nil || shop.Email == "" {
		return
	}
	if resp.Status == entity.RequestStatusRejected {
		uc.notifier.RequestRejected(shop.Email, resp, reason)
		return
	}
	uc.notifier.RequestApproved(shop.Email, resp)
}
