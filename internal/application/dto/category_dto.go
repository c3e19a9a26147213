package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. ParentID vacío crea
// una categoría de primer nivel; si se envía, debe apuntar a una categoría
// de primer nivel de la misma empresa.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=500"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (campos opcionales).
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ParentID    *string `json:"parent_id" validate:"omitempty"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse salida de una categoría. ParentName se resuelve en el
// listado contra la misma colección; "—" cuando el id no coincide con nada.
type CategoryResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    string    `json:"parent_id,omitempty"`
	ParentName  string    `json:"parent_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
