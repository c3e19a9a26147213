// Package procurement implementa el ciclo de abastecimiento entre
// droguerías y bodegas: solicitudes de compra (pending → approved →
// dispatched, con rejected y cancelled) y devoluciones de mercancía.
package procurement

import (
	"context"

	"github.com/jdruizm/Botica-api/internal/application/dto"
)

// Notifier avisa por correo a la droguería solicitante sobre el resultado de
// su solicitud. Las implementaciones son de mejor esfuerzo: registran sus
// fallos y nunca los propagan, por eso los métodos no devuelven error.
type Notifier interface {
	RequestApproved(recipient string, req *dto.PurchaseRequestResponse)
	RequestRejected(recipient string, req *dto.PurchaseRequestResponse, reason string)
}

// OrderPDFGenerator produce la orden de despacho en PDF que usa la bodega
// para el alistamiento (picking).
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, req *dto.PurchaseRequestResponse) ([]byte, error)
}

// RequestXMLExporter produce el XML de intercambio con el ERP, con digest
// SHA-256 sobre la forma canónica del documento.
type RequestXMLExporter interface {
	ExportRequestXML(req *dto.PurchaseRequestResponse) ([]byte, error)
}
