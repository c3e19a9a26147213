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

// CategoryUseCase casos de uso para categorías de medicamentos. La jerarquía
// es de un solo nivel: solo las categorías sin padre pueden elegirse como
// padre de otra.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. Sin parent_id queda de primer nivel y aparece
// de inmediato en la lista de padres seleccionables.
func (uc *CategoryUseCase) Create(companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.validateParent(companyID, "", in.ParentID); err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category)
}

// GetByID obtiene una categoría de la empresa.
func (uc *CategoryUseCase) GetByID(companyID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.CompanyID != companyID {
		return nil, nil
	}
	return uc.toResponse(category)
}

// Update actualiza una categoría. Cambiar el padre aplica la misma regla de
// primer nivel que la creación.
func (uc *CategoryUseCase) Update(companyID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.CompanyID != companyID {
		return nil, nil
	}

	if in.ParentID != nil {
		if err := uc.validateParent(companyID, id, *in.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = *in.ParentID
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()

	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category)
}

// List lista categorías con el nombre del padre resuelto contra la misma
// colección. query filtra por substring sobre nombre y descripción.
func (uc *CategoryUseCase) List(companyID, query string, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	var list []*entity.Category
	var err error
	if query != "" {
		list, err = uc.repo.ListByCompany(companyID, 0, 0)
		if err != nil {
			return nil, err
		}
		list = search.Filter(list, query, func(c *entity.Category) []string {
			return []string{c.Name, c.Description}
		})
		list = paginate(list, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
	}

	names, err := uc.parentNames(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *buildCategoryResponse(c, names))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListParents devuelve solo las categorías de primer nivel: el conjunto
// elegible como padre en los formularios.
func (uc *CategoryUseCase) ListParents(companyID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListTopLevel(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *buildCategoryResponse(c, nil))
	}
	return items, nil
}

// Delete elimina una categoría sin hijos. Con hijos se rechaza: no hay
// re-parenting implícito.
func (uc *CategoryUseCase) Delete(companyID, id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil || category.CompanyID != companyID {
		return domain.ErrNotFound
	}
	children, err := uc.repo.ListByParent(companyID, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// validateParent aplica la regla de jerarquía: el padre debe existir, ser de
// la misma empresa y ser de primer nivel. selfID evita el auto-padre en Update.
func (uc *CategoryUseCase) validateParent(companyID, selfID, parentID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == selfID {
		return domain.ErrInvalidInput
	}
	parent, err := uc.repo.GetByID(parentID)
	if err != nil {
		return err
	}
	if parent == nil || parent.CompanyID != companyID {
		return domain.ErrInvalidInput
	}
	if !parent.IsTopLevel() {
		return domain.ErrParentNotTopLevel
	}
	return nil
}

func (uc *CategoryUseCase) parentNames(companyID string) (map[string]string, error) {
	all, err := uc.repo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, c := range all {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (uc *CategoryUseCase) toResponse(c *entity.Category) (*dto.CategoryResponse, error) {
	names, err := uc.parentNames(c.CompanyID)
	if err != nil {
		return nil, err
	}
	return buildCategoryResponse(c, names), nil
}

func buildCategoryResponse(c *entity.Category, parentNames map[string]string) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		ParentName:  lookup.Name(parentNames, c.ParentID),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
