package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
	"github.com/jdruizm/Botica-api/pkg/lookup"
	"github.com/jdruizm/Botica-api/pkg/search"
)

// ShopUseCase casos de uso para droguerías. La relación con la bodega de
// abastecimiento se maneja con acciones explícitas de asignación y retiro;
// Update nunca toca warehouse_id.
type ShopUseCase struct {
	repo          repository.ShopRepository
	warehouseRepo repository.WarehouseRepository
	recorder      *audit.Recorder
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository, warehouseRepo repository.WarehouseRepository, recorder *audit.Recorder) *ShopUseCase {
	return &ShopUseCase{repo: repo, warehouseRepo: warehouseRepo, recorder: recorder}
}

// Create crea una droguería sin bodega asignada.
func (uc *ShopUseCase) Create(companyID string, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	now := time.Now()
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(shop); err != nil {
		return nil, err
	}
	return uc.toResponse(shop)
}

// GetByID obtiene una droguería de la empresa.
func (uc *ShopUseCase) GetByID(companyID, id string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.CompanyID != companyID {
		return nil, nil
	}
	return uc.toResponse(shop)
}

// Update actualiza los datos de contacto de una droguería.
func (uc *ShopUseCase) Update(companyID, id string, in dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.CompanyID != companyID {
		return nil, nil
	}
	if in.Name != nil {
		shop.Name = *in.Name
	}
	if in.Address != nil {
		shop.Address = *in.Address
	}
	if in.Phone != nil {
		shop.Phone = *in.Phone
	}
	if in.Email != nil {
		shop.Email = *in.Email
	}
	shop.UpdatedAt = time.Now()
	if err := uc.repo.Update(shop); err != nil {
		return nil, err
	}
	return uc.toResponse(shop)
}

// List lista droguerías con el nombre de su bodega resuelto. query filtra
// por substring sobre nombre, dirección y teléfono.
func (uc *ShopUseCase) List(companyID, query string, page dto.PageRequest) (*dto.ShopListResponse, error) {
	var list []*entity.Shop
	var err error
	if query != "" {
		list, err = uc.repo.ListByCompany(companyID, 0, 0)
		if err != nil {
			return nil, err
		}
		list = search.Filter(list, query, func(s *entity.Shop) []string {
			return []string{s.Name, s.Address, s.Phone}
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
	items := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *buildShopResponse(s, names))
	}
	return &dto.ShopListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una droguería.
func (uc *ShopUseCase) Delete(companyID, id string) error {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if shop == nil || shop.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// AssignWarehouse asigna la bodega de abastecimiento. Una droguería ya
// asignada a otra bodega debe retirarse primero (ErrAlreadyAssigned).
func (uc *ShopUseCase) AssignWarehouse(companyID, userID, shopID, warehouseID string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if shop.IsAssigned() && shop.WarehouseID != warehouseID {
		return nil, domain.ErrAlreadyAssigned
	}

	if err := uc.repo.AssignWarehouse(shopID, warehouseID); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		EntityType: "shop",
		EntityID:   shopID,
		Action:     entity.AuditActionShopAssigned,
		Detail:     shop.Name + " asignada a " + warehouse.Name,
		Before:     map[string]string{"warehouse_id": shop.WarehouseID},
		After:      map[string]string{"warehouse_id": warehouseID},
	})

	shop.WarehouseID = warehouseID
	return uc.toResponse(shop)
}

// UnassignWarehouse retira la bodega de abastecimiento de la droguería.
func (uc *ShopUseCase) UnassignWarehouse(companyID, userID, shopID string) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil || shop.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !shop.IsAssigned() {
		return nil, domain.ErrConflict
	}

	if err := uc.repo.UnassignWarehouse(shopID); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		CompanyID:  companyID,
		UserID:     userID,
		EntityType: "shop",
		EntityID:   shopID,
		Action:     entity.AuditActionShopUnassigned,
		Detail:     shop.Name + " sin bodega de abastecimiento",
		Before:     map[string]string{"warehouse_id": shop.WarehouseID},
		After:      map[string]string{"warehouse_id": ""},
	})

	shop.WarehouseID = ""
	return uc.toResponse(shop)
}

// WarehouseShops agrupa las droguerías de una bodega: las asignadas a ella y
// las que siguen libres (candidatas a asignación). Asignar una droguería la
// mueve de una lista a la otra y actualiza ambos conteos.
func (uc *ShopUseCase) WarehouseShops(companyID, warehouseID string) (*dto.WarehouseShopsResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	all, err := uc.repo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	names, err := uc.warehouseNames(companyID)
	if err != nil {
		return nil, err
	}

	assigned := make([]dto.ShopResponse, 0)
	unassigned := make([]dto.ShopResponse, 0)
	for _, s := range all {
		switch s.WarehouseID {
		case warehouseID:
			assigned = append(assigned, *buildShopResponse(s, names))
		case "":
			unassigned = append(unassigned, *buildShopResponse(s, names))
		}
	}
	return &dto.WarehouseShopsResponse{
		Assigned:        assigned,
		Unassigned:      unassigned,
		AssignedCount:   len(assigned),
		UnassignedCount: len(unassigned),
	}, nil
}

func (uc *ShopUseCase) warehouseNames(companyID string) (map[string]string, error) {
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

func (uc *ShopUseCase) toResponse(s *entity.Shop) (*dto.ShopResponse, error) {
	names, err := uc.warehouseNames(s.CompanyID)
	if err != nil {
		return nil, err
	}
	return buildShopResponse(s, names), nil
}

func buildShopResponse(s *entity.Shop, warehouseNames map[string]string) *dto.ShopResponse {
	if s == nil {
		return nil
	}
	return &dto.ShopResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		Name:          s.Name,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		WarehouseID:   s.WarehouseID,
		WarehouseName: lookup.Name(warehouseNames, s.WarehouseID),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
