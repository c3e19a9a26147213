package repository

import "github.com/jdruizm/Botica-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Category, error)
	// ListTopLevel devuelve solo las categorías sin padre (las elegibles como padre).
	ListTopLevel(companyID string) ([]*entity.Category, error)
	ListByParent(companyID, parentID string) ([]*entity.Category, error)
	Delete(id string) error
}
