package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/usecase"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// AttendanceHandler maneja el registro de asistencia del personal.
type AttendanceHandler struct {
	uc *usecase.AttendanceUseCase
}

// NewAttendanceHandler construye el handler de asistencia.
func NewAttendanceHandler(uc *usecase.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// CheckIn godoc
// @Summary      Registrar entrada del día para el usuario autenticado
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CheckInRequest  true  "droguería opcional, fecha y estado"
// @Success      201   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attendance [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.CheckIn(companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asistencia (filtros por rango de fechas, droguería y usuario)
// @Tags         attendance
// @Produce      json
// @Security     Bearer
// @Param        from     query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        to       query  string  false  "fecha final YYYY-MM-DD"
// @Param        shop_id  query  string  false  "ID de la droguería"
// @Param        user_id  query  string  false  "ID del usuario"
// @Param        limit    query  int     false  "límite de página"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.AttendanceListResponse
// @Router       /api/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	filter := repository.AttendanceFilter{
		ShopID: c.Query("shop_id"),
		UserID: c.Query("user_id"),
		Limit:  page.Limit,
		Offset: page.Offset,
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
		filter.To = &t
	}
	out, err := h.uc.List(companyID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro de asistencia por ID
// @Tags         attendance
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.AttendanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/attendance/{id} [get]
func (h *AttendanceHandler) GetByID(c *fiber.Ctx) error {
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

// CheckOut godoc
// @Summary      Registrar salida sobre un registro abierto
// @Tags         attendance
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.AttendanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/attendance/{id}/check-out [put]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.CheckOut(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de asistencia (solo admin)
// @Tags         attendance
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
