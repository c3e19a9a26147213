package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
)

// CompanyHandler maneja el perfil de la distribuidora.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler de empresa.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// GetProfile godoc
// @Summary      Obtener el perfil de la distribuidora
// @Tags         company
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) GetProfile(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetProfile(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar el perfil de la distribuidora (solo admin)
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdateCompanyRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) UpdateProfile(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.UpdateProfile(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
