package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
)

// SettingsHandler maneja la configuración tributaria y de aplicación.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler de configuración.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetTax godoc
// @Summary      Obtener configuración tributaria (defaults si nunca se guardó)
// @Tags         settings
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.TaxSettingsResponse
// @Router       /api/settings/tax [get]
func (h *SettingsHandler) GetTax(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetTax(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveTax godoc
// @Summary      Guardar configuración tributaria (solo admin)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.SaveTaxSettingsRequest  true  "IVA, retenciones y régimen"
// @Success      200  {object}  dto.TaxSettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/settings/tax [put]
func (h *SettingsHandler) SaveTax(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.SaveTaxSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.SaveTax(companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetApp godoc
// @Summary      Obtener configuración de aplicación (defaults si nunca se guardó)
// @Tags         settings
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.AppSettingsResponse
// @Router       /api/settings/app [get]
func (h *SettingsHandler) GetApp(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetApp(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveApp godoc
// @Summary      Guardar configuración de aplicación (solo admin)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.SaveAppSettingsRequest  true  "umbral de stock bajo, moneda, zona horaria"
// @Success      200  {object}  dto.AppSettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/settings/app [put]
func (h *SettingsHandler) SaveApp(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.SaveAppSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.SaveApp(companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
