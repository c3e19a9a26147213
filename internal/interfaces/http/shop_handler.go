package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
)

// ShopHandler maneja droguerías y su vínculo con bodegas.
type ShopHandler struct {
	uc *usecase.ShopUseCase
}

// NewShopHandler construye el handler de droguerías.
func NewShopHandler(uc *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

// Create godoc
// @Summary      Crear droguería
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateShopRequest  true  "datos de la droguería"
// @Success      201   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateShopRequest
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
// @Summary      Listar droguerías (con búsqueda difusa opcional)
// @Tags         shops
// @Produce      json
// @Security     Bearer
// @Param        search  query  string  false  "texto de búsqueda"
// @Param        limit   query  int     false  "límite de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ShopListResponse
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener droguería por ID
// @Tags         shops
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la droguería"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar droguería
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                 true  "ID de la droguería"
// @Param        body  body  dto.UpdateShopRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.ShopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateShopRequest
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
// @Summary      Eliminar droguería
// @Tags         shops
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la droguería"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignWarehouse godoc
// @Summary      Asignar bodega surtidora a la droguería
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                      true  "ID de la droguería"
// @Param        body  body  dto.AssignWarehouseRequest  true  "bodega a asignar"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shops/{id}/assign-warehouse [post]
func (h *ShopHandler) AssignWarehouse(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.AssignWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.AssignWarehouse(companyID, GetUserID(c), c.Params("id"), in.WarehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UnassignWarehouse godoc
// @Summary      Quitar la bodega surtidora de la droguería
// @Tags         shops
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la droguería"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id}/unassign-warehouse [post]
func (h *ShopHandler) UnassignWarehouse(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.UnassignWarehouse(companyID, GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WarehouseShops godoc
// @Summary      Listar droguerías surtidas por una bodega
// @Tags         warehouses
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseShopsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/shops [get]
func (h *ShopHandler) WarehouseShops(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.WarehouseShops(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
