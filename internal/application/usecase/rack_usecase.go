package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/lookup"
	"github.com/jdruizm/Botica-api/pkg/search"
)

// RackUseCase casos de uso CRUD para estanterías. El número de estantería se
// normaliza a mayúsculas tanto al crear como al actualizar.
type RackUseCase struct {
	repo          repository.RackRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRackUseCase construye el caso de uso.
func NewRackUseCase(repo repository.RackRepository, warehouseRepo repository.WarehouseRepository) *RackUseCase {
	return &RackUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea una estantería.
func (uc *RackUseCase) Create(companyID string, in dto.CreateRackRequest) (*dto.RackResponse, error) {
	if err := uc.validateWarehouse(companyID, in.WarehouseID); err != nil {
		return nil, err
	}
	now := time.Now()
	rack := &entity.Rack{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		RackName:    in.RackName,
		RackNumber:  entity.NormalizeRackNumber(in.RackNumber),
		WarehouseID: in.WarehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(rack); err != nil {
		return nil, err
	}
	return uc.toResponse(rack)
}

// GetByID obtiene una estantería de la empresa.
func (uc *RackUseCase) GetByID(companyID, id string) (*dto.RackResponse, error) {
	rack, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rack == nil || rack.CompanyID != companyID {
		return nil, nil
	}
	return uc.toResponse(rack)
}

// Update actualiza una estantería. El número se vuelve a normalizar aquí:
// la regla aplica en todas las escrituras, no solo en la creación.
func (uc *RackUseCase) Update(companyID, id string, in dto.UpdateRackRequest) (*dto.RackResponse, error) {
	rack, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rack == nil || rack.CompanyID != companyID {
		return nil, nil
	}

	if in.WarehouseID != nil {
		if err := uc.validateWarehouse(companyID, *in.WarehouseID); err != nil {
			return nil, err
		}
		rack.WarehouseID = *in.WarehouseID
	}
	if in.RackName != nil {
		rack.RackName = *in.RackName
	}
	if in.RackNumber != nil {
		rack.RackNumber = entity.NormalizeRackNumber(*in.RackNumber)
	}
	rack.UpdatedAt = time.Now()

	if err := uc.repo.Update(rack); err != nil {
		return nil, err
	}
	return uc.toResponse(rack)
}

// List lista estanterías con el nombre de la bodega resuelto. query filtra
// por substring sobre nombre y número.
func (uc *RackUseCase) List(companyID, query string, page dto.PageRequest) (*dto.RackListResponse, error) {
	var list []*entity.Rack
	var err error
	if query != "" {
		list, err = uc.repo.ListByCompany(companyID, 0, 0)
		if err != nil {
			return nil, err
		}
		list = search.Filter(list, query, func(r *entity.Rack) []string {
			return []string{r.RackName, r.RackNumber}
		})
		list = paginate(list, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
	}

	names, err := uc.warehouseNames(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RackResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *buildRackResponse(r, names))
	}
	return &dto.RackListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una estantería.
func (uc *RackUseCase) Delete(companyID, id string) error {
	rack, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rack == nil || rack.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func (uc *RackUseCase) validateWarehouse(companyID, warehouseID string) error {
	if warehouseID == "" {
		return nil
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *RackUseCase) warehouseNames(companyID string) (map[string]string, error) {
	all, err := uc.warehouseRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, w := range all {
		names[w.ID] = w.Name
	}
	return names, nil
}

func (uc *RackUseCase) toResponse(r *entity.Rack) (*dto.RackResponse, error) {
	names, err := uc.warehouseNames(r.CompanyID)
	if err != nil {
		return nil, err
	}
	return buildRackResponse(r, names), nil
}

func buildRackResponse(r *entity.Rack, warehouseNames map[string]string) *dto.RackResponse {
	if r == nil {
		return nil
	}
	return &dto.RackResponse{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		RackName:      r.RackName,
		RackNumber:    r.RackNumber,
		WarehouseID:   r.WarehouseID,
		WarehouseName: lookup.Name(warehouseNames, r.WarehouseID),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
