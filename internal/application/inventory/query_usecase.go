package inventory

import (
	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/lookup"
)

// QueryUseCase lecturas de stock y de historial de movimientos.
type QueryUseCase struct {
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
	medicineRepo  repository.MedicineRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	medicineRepo repository.MedicineRepository,
	warehouseRepo repository.WarehouseRepository,
) *QueryUseCase {
	return &QueryUseCase{
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		medicineRepo:  medicineRepo,
		warehouseRepo: warehouseRepo,
	}
}

// ListStock lista existencias con los nombres de bodega y medicamento
// resueltos contra las colecciones hermanas.
func (uc *QueryUseCase) ListStock(companyID, warehouseID, medicineID string, limit, offset int) (*dto.StockListResponse, error) {
	list, err := uc.stockRepo.ListByCompany(companyID, warehouseID, medicineID, limit, offset)
	if err != nil {
		return nil, err
	}

	medicines, err := uc.medicineRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.warehouseRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	medNames := make(map[string]string, len(medicines))
	for _, m := range medicines {
		medNames[m.ID] = m.Name
	}
	whNames := make(map[string]string, len(warehouses))
	for _, w := range warehouses {
		whNames[w.ID] = w.Name
	}

	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockResponse{
			WarehouseID:   s.WarehouseID,
			WarehouseName: lookup.Name(whNames, s.WarehouseID),
			MedicineID:    s.MedicineID,
			MedicineName:  lookup.Name(medNames, s.MedicineID),
			Quantity:      s.Quantity,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListMovements lista el historial de movimientos de la empresa.
func (uc *QueryUseCase) ListMovements(companyID string, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	list, err := uc.movementRepo.ListByCompany(companyID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			WarehouseID:   m.WarehouseID,
			MedicineID:    m.MedicineID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			TotalCost:     m.TotalCost,
			Reference:     m.Reference,
			Notes:         m.Notes,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}
