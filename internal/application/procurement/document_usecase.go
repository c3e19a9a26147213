package procurement

import (
	"context"
	"fmt"

	"github.com/jdruizm/Botica-api/internal/domain"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

// DocumentUseCase genera los documentos de una solicitud: la orden de
// despacho en PDF para el alistamiento en bodega y el XML de intercambio
// con el ERP.
type DocumentUseCase struct {
	requests  *PurchaseRequestUseCase
	generator OrderPDFGenerator
	exporter  RequestXMLExporter
}

// NewDocumentUseCase construye el caso de uso inyectando sus dependencias.
func NewDocumentUseCase(requests *PurchaseRequestUseCase, generator OrderPDFGenerator, exporter RequestXMLExporter) *DocumentUseCase {
	return &DocumentUseCase{requests: requests, generator: generator, exporter: exporter}
}

// DownloadOrderPDF genera la orden de despacho de una solicitud ya aprobada
// (o despachada, para reimpresión).
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la solicitud no existe o es de otra empresa.
//   - domain.ErrInvalidStatus    si la solicitud aún no fue aprobada.
func (uc *DocumentUseCase) DownloadOrderPDF(ctx context.Context, companyID, requestID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar solicitud enriquecida ───────────────────────────────────────
	req, err := uc.requests.GetByID(companyID, requestID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener solicitud: %w", err)
	}
	if req == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Validar estado: la orden existe desde la aprobación ────────────────
	if req.Status != entity.RequestStatusApproved && req.Status != entity.RequestStatusDispatched {
		return nil, "", domain.ErrInvalidStatus
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateOrderPDF(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("orden_%s.pdf", shortID(req.ID))
	return pdfBytes, filename, nil
}

// ExportRequestXML genera el documento XML de la solicitud para el ERP. A
// diferencia del PDF, se permite en cualquier estado: el ERP consume también
// el pipeline pendiente.
func (uc *DocumentUseCase) ExportRequestXML(ctx context.Context, companyID, requestID string) (xmlBytes []byte, filename string, err error) {
	req, err := uc.requests.GetByID(companyID, requestID)
	if err != nil {
		return nil, "", fmt.Errorf("xml: obtener solicitud: %w", err)
	}
	if req == nil {
		return nil, "", domain.ErrNotFound
	}

	xmlBytes, err = uc.exporter.ExportRequestXML(req)
	if err != nil {
		return nil, "", fmt.Errorf("xml: exportación fallida: %w", err)
	}

	filename = fmt.Sprintf("solicitud_%s.xml", shortID(req.ID))
	return xmlBytes, filename, nil
}

// shortID recorta un UUID a su primer bloque para nombres de archivo.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
