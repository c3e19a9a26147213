package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/audit"
	"github.com/jdruizm/Botica-api/internal/application/dto"
)

// AuditHandler expone la bitácora de cambios (solo admin).
type AuditHandler struct {
	uc *audit.QueryUseCase
}

// NewAuditHandler construye el handler de auditoría.
func NewAuditHandler(uc *audit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Consultar bitácora de cambios (solo admin)
// @Tags         audit
// @Produce      json
// @Security     Bearer
// @Param        entity_type  query  string  false  "tipo de entidad (medicine, warehouse, ...)"
// @Param        entity_id    query  string  false  "ID de la entidad"
// @Param        limit        query  int     false  "límite de página"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.AuditLogListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(companyID, c.Query("entity_type"), c.Query("entity_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
