package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
)

// RackHandler maneja el CRUD de estanterías dentro de bodegas.
type RackHandler struct {
	uc *usecase.RackUseCase
}

// NewRackHandler construye el handler de estanterías.
func NewRackHandler(uc *usecase.RackUseCase) *RackHandler {
	return &RackHandler{uc: uc}
}

// Create godoc
// @Summary      Crear estantería
// @Tags         racks
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateRackRequest  true  "datos de la estantería"
// @Success      201   {object}  dto.RackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/racks [post]
func (h *RackHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateRackRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar estanterías (con búsqueda difusa opcional)
// @Tags         racks
// @Produce      json
// @Security     Bearer
// @Param        search  query  string  false  "texto de búsqueda"
// @Param        limit   query  int     false  "límite de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.RackListResponse
// @Router       /api/racks [get]
func (h *RackHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(companyID, c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener estantería por ID
// @Tags         racks
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la estantería"
// @Success      200  {object}  dto.RackResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id} [get]
func (h *RackHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estantería
// @Tags         racks
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                 true  "ID de la estantería"
// @Param        body  body  dto.UpdateRackRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.RackResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id} [put]
func (h *RackHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateRackRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar estantería
// @Tags         racks
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la estantería"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id} [delete]
func (h *RackHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
