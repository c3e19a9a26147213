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

// MedicineUseCase casos de uso CRUD para el catálogo de medicamentos.
// El costo promedio no se edita aquí: solo lo mueve el motor de movimientos.
type MedicineUseCase struct {
	repo         repository.MedicineRepository
	categoryRepo repository.CategoryRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(repo repository.MedicineRepository, categoryRepo repository.CategoryRepository) *MedicineUseCase {
	return &MedicineUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create registra un medicamento. El SKU es único por empresa.
func (uc *MedicineUseCase) Create(companyID string, in dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	existing, err := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.validateCategory(companyID, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	medicine := &entity.Medicine{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		GenericName:  in.GenericName,
		CategoryID:   in.CategoryID,
		Manufacturer: in.Manufacturer,
		UnitPrice:    in.UnitPrice,
		TaxRate:      in.TaxRate,
		UnitMeasure:  in.UnitMeasure,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(medicine); err != nil {
		return nil, err
	}
	return uc.toResponse(medicine)
}

// GetByID obtiene un medicamento de la empresa.
func (uc *MedicineUseCase) GetByID(companyID, id string) (*dto.MedicineResponse, error) {
	medicine, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medicine == nil || medicine.CompanyID != companyID {
		return nil, nil
	}
	return uc.toResponse(medicine)
}

// Update actualiza un medicamento (el SKU no cambia después de creado).
func (uc *MedicineUseCase) Update(companyID, id string, in dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medicine == nil || medicine.CompanyID != companyID {
		return nil, nil
	}

	if in.CategoryID != nil {
		if err := uc.validateCategory(companyID, *in.CategoryID); err != nil {
			return nil, err
		}
		medicine.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		medicine.Name = *in.Name
	}
	if in.GenericName != nil {
		medicine.GenericName = *in.GenericName
	}
	if in.Manufacturer != nil {
		medicine.Manufacturer = *in.Manufacturer
	}
	if in.UnitPrice != nil {
		medicine.UnitPrice = *in.UnitPrice
	}
	if in.TaxRate != nil {
		medicine.TaxRate = *in.TaxRate
	}
	if in.UnitMeasure != nil {
		medicine.UnitMeasure = *in.UnitMeasure
	}
	if in.ReorderLevel != nil {
		medicine.ReorderLevel = *in.ReorderLevel
	}
	medicine.UpdatedAt = time.Now()

	if err := uc.repo.Update(medicine); err != nil {
		return nil, err
	}
	return uc.toResponse(medicine)
}

// List lista medicamentos con el nombre de la categoría resuelto. query
// filtra por substring sobre sku, nombre, genérico y laboratorio.
func (uc *MedicineUseCase) List(companyID, query string, page dto.PageRequest) (*dto.MedicineListResponse, error) {
	var list []*entity.Medicine
	var err error
	if query != "" {
		list, err = uc.repo.ListByCompany(companyID, 0, 0)
		if err != nil {
			return nil, err
		}
		list = search.Filter(list, query, func(m *entity.Medicine) []string {
			return []string{m.SKU, m.Name, m.GenericName, m.Manufacturer}
		})
		list = paginate(list, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
	}

	names, err := uc.categoryNames(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *buildMedicineResponse(m, names))
	}
	return &dto.MedicineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un medicamento. Las solicitudes y movimientos históricos
// que lo referencian muestran el marcador en vez del nombre.
func (uc *MedicineUseCase) Delete(companyID, id string) error {
	medicine, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if medicine == nil || medicine.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func (uc *MedicineUseCase) validateCategory(companyID, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil || category.CompanyID != companyID {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *MedicineUseCase) categoryNames(companyID string) (map[string]string, error) {
	all, err := uc.categoryRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, c := range all {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (uc *MedicineUseCase) toResponse(m *entity.Medicine) (*dto.MedicineResponse, error) {
	names, err := uc.categoryNames(m.CompanyID)
	if err != nil {
		return nil, err
	}
	return buildMedicineResponse(m, names), nil
}

func buildMedicineResponse(m *entity.Medicine, categoryNames map[string]string) *dto.MedicineResponse {
	if m == nil {
		return nil
	}
	return &dto.MedicineResponse{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		SKU:          m.SKU,
		Name:         m.Name,
		GenericName:  m.GenericName,
		CategoryID:   m.CategoryID,
		CategoryName: lookup.Name(categoryNames, m.CategoryID),
		Manufacturer: m.Manufacturer,
		UnitPrice:    m.UnitPrice,
		Cost:         m.Cost,
		TaxRate:      m.TaxRate,
		UnitMeasure:  m.UnitMeasure,
		ReorderLevel: m.ReorderLevel,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
