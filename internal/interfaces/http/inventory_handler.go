package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/inventory"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// InventoryHandler maneja movimientos de inventario y consulta de stock.
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	queries   *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(movements *inventory.MovementUseCase, queries *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, queries: queries}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.RegisterMovementRequest  true  "medicine_id, warehouse_id (o from/to para TRANSFER), type, quantity, unit_cost (entradas)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return missingCompany(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	if err := h.movements.RegisterFromRequest(c.Context(), companyID, userID, in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// ListMovements godoc
// @Summary      Consultar el kardex de movimientos
// @Tags         inventory
// @Produce      json
// @Security     Bearer
// @Param        warehouse_id  query  string  false  "ID de la bodega"
// @Param        medicine_id   query  string  false  "ID del medicamento"
// @Param        type          query  string  false  "IN|OUT|ADJUSTMENT|TRANSFER"
// @Param        from          query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        to            query  string  false  "fecha final YYYY-MM-DD"
// @Param        limit         query  int     false  "límite de página"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	filter := repository.MovementFilter{
		WarehouseID: c.Query("warehouse_id"),
		MedicineID:  c.Query("medicine_id"),
		Type:        c.Query("type"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
		}
		// El filtro es inclusivo: el día final cubre hasta su último instante.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	out, err := h.queries.ListMovements(companyID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      Consultar existencias por bodega y medicamento
// @Tags         inventory
// @Produce      json
// @Security     Bearer
// @Param        warehouse_id  query  string  false  "ID de la bodega"
// @Param        medicine_id   query  string  false  "ID del medicamento"
// @Param        limit         query  int     false  "límite de página"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.queries.ListStock(companyID, c.Query("warehouse_id"), c.Query("medicine_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
