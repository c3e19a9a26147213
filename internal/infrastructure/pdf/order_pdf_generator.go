// Package pdf implementa la generación de la Orden de Despacho que imprime la
// bodega para el alistamiento (picking) de una solicitud aprobada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega de origen  │  N° Orden + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINO: Droguería solicitante + prioridad + estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Medicamento | Cantidad | Alistado              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + aprobación + firmas de preparación y recibo        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/procurement"
	"github.com/jdruizm/Botica-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ procurement.OrderPDFGenerator = (*OrderPDFGenerator)(nil)

// OrderPDFGenerator implementa procurement.OrderPDFGenerator usando Maroto v2.
type OrderPDFGenerator struct{}

// NewOrderPDFGenerator construye el generador.
func NewOrderPDFGenerator() *OrderPDFGenerator { return &OrderPDFGenerator{} }

// GenerateOrderPDF genera la orden de despacho y devuelve sus bytes.
func (g *OrderPDFGenerator) GenerateOrderPDF(_ context.Context, req *dto.PurchaseRequestResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Despacho", true).
		WithAuthor(req.WarehouseName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(destinationRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(req.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if req.Notes != "" {
		m.AddRows(notesRow(req.Notes))
	}
	m.AddRows(approvalRow(req))
	m.AddRows(line.NewRow(4))
	m.AddRows(signaturesRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: bodega de origen (izq) y número de orden + fecha (der).
func headerRow(req *dto.PurchaseRequestResponse) core.Row {
	fecha := req.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(req.WarehouseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega de origen", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(req.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// destinationRow: droguería solicitante con prioridad y estado actual.
func destinationRow(req *dto.PurchaseRequestResponse) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(req.ShopName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Prioridad: %s   |   Estado: %s",
				priorityLabel(req.Priority), statusLabel(req.Status),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de alistamiento.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Medicamento", 7, align.Left),
		h("Cantidad", 2, align.Right),
		h("Alistado", 2, align.Center),
	)
}

// tableItemRows: una fila por línea, con la casilla de alistado en blanco
// para marcar a mano.
func tableItemRows(items []dto.RequestItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(7).Add(text.New(
				it.MedicineName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.QuantityRequested.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"______",
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// notesRow: observaciones de la solicitud.
func notesRow(notes string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// approvalRow: fecha de aprobación, cuando existe.
func approvalRow(req *dto.PurchaseRequestResponse) core.Row {
	texto := "Solicitud pendiente de aprobación"
	if req.ApprovedAt != nil {
		texto = "Aprobada el " + req.ApprovedAt.Format("02/01/2006 15:04")
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(texto, props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// signaturesRow: firmas de quien prepara y quien recibe.
func signaturesRow() core.Row {
	firma := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 8, Color: colorGray,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 14, Color: colorGray,
			}),
		)
	}
	return row.New(20).Add(
		firma("Preparado por (bodega)"),
		firma("Recibido por (droguería)"),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// shortID recorta el uuid al segmento inicial para el número visible.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func priorityLabel(p string) string {
	switch p {
	case entity.RequestPriorityLow:
		return "Baja"
	case entity.RequestPriorityHigh:
		return "Alta"
	case entity.RequestPriorityUrgent:
		return "Urgente"
	default:
		return "Normal"
	}
}

func statusLabel(s string) string {
	switch s {
	case entity.RequestStatusApproved:
		return "Aprobada"
	case entity.RequestStatusDispatched:
		return "Despachada"
	case entity.RequestStatusRejected:
		return "Rechazada"
	case entity.RequestStatusCancelled:
		return "Cancelada"
	default:
		return "Pendiente"
	}
}
