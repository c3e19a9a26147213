package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/procurement"
	"github.com/jdruizm/Botica-api/internal/domain/repository"
)

// PurchaseRequestHandler maneja el ciclo de vida de solicitudes de compra:
// creación, aprobación, despacho y descarga de documentos.
type PurchaseRequestHandler struct {
	uc   *procurement.PurchaseRequestUseCase
	docs *procurement.DocumentUseCase
}

// NewPurchaseRequestHandler construye el handler de solicitudes.
func NewPurchaseRequestHandler(uc *procurement.PurchaseRequestUseCase, docs *procurement.DocumentUseCase) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{uc: uc, docs: docs}
}

// Create godoc
// @Summary      Crear solicitud de compra (queda en estado pending)
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreatePurchaseRequestRequest  true  "droguería, bodega y líneas"
// @Success      201   {object}  dto.PurchaseRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests [post]
func (h *PurchaseRequestHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreatePurchaseRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.Create(companyID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes (filtros por estado y droguería)
// @Tags         purchase-requests
// @Produce      json
// @Security     Bearer
// @Param        status   query  string  false  "pending|approved|rejected|dispatched|cancelled"
// @Param        shop_id  query  string  false  "ID de la droguería"
// @Param        limit    query  int     false  "límite de página"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PurchaseRequestListResponse
// @Router       /api/purchase-requests [get]
func (h *PurchaseRequestHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	filter := repository.PurchaseRequestFilter{
		Status: c.Query("status"),
		ShopID: c.Query("shop_id"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	out, err := h.uc.List(companyID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud por ID (con líneas)
// @Tags         purchase-requests
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id} [get]
func (h *PurchaseRequestHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Editar solicitud pendiente (reemplaza las líneas)
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                            true  "ID de la solicitud"
// @Param        body  body  dto.UpdatePurchaseRequestRequest  true  "campos y líneas nuevas"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id} [put]
func (h *PurchaseRequestHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdatePurchaseRequestRequest
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
// @Summary      Eliminar solicitud pendiente
// @Tags         purchase-requests
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id} [delete]
func (h *PurchaseRequestHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve godoc
// @Summary      Aprobar solicitud (valida stock de todas las líneas)
// @Tags         purchase-requests
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/approve [post]
func (h *PurchaseRequestHandler) Approve(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.Approve(c.Context(), companyID, GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud con motivo
// @Tags         purchase-requests
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "ID de la solicitud"
// @Param        body  body  dto.RejectRequestRequest  true  "motivo del rechazo"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/reject [post]
func (h *PurchaseRequestHandler) Reject(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.RejectRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.Reject(c.Context(), companyID, GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar solicitud pendiente o aprobada
// @Tags         purchase-requests
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/cancel [post]
func (h *PurchaseRequestHandler) Cancel(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.Cancel(c.Context(), companyID, GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dispatch godoc
// @Summary      Despachar solicitud aprobada (descuenta stock de la bodega)
// @Tags         purchase-requests
// @Produce      json
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/dispatch [post]
func (h *PurchaseRequestHandler) Dispatch(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.Dispatch(c.Context(), companyID, GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar orden de despacho en PDF (solicitud aprobada o despachada)
// @Tags         purchase-requests
// @Produce      application/pdf
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/pdf [get]
func (h *PurchaseRequestHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	pdfBytes, filename, err := h.docs.DownloadOrderPDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// DownloadXML godoc
// @Summary      Exportar solicitud en XML para el sistema contable
// @Tags         purchase-requests
// @Produce      application/xml
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/xml [get]
func (h *PurchaseRequestHandler) DownloadXML(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	xmlBytes, filename, err := h.docs.ExportRequestXML(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(xmlBytes)
}
