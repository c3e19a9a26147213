package dto

import "time"

// RegisterCompanyRequest entrada para registrar la distribuidora junto con su
// primer usuario administrador.
type RegisterCompanyRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	NIT           string `json:"nit" validate:"required,min=1,max=20"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	AdminName     string `json:"admin_name" validate:"required,min=1,max=200"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=8"`
}

// UpdateCompanyRequest entrada para actualizar el perfil de la empresa.
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// RegisterCompanyResponse salida del registro: la empresa, su primer admin y
// un token listo para usar la consola sin un login adicional.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	User    UserResponse    `json:"user"`
	Token   string          `json:"token"`
}

// CompanyResponse salida de una empresa (sin datos sensibles).
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NIT       string    `json:"nit"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
