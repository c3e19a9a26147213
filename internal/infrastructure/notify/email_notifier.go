// Package notify implementa los avisos por correo a las droguerías cuando la
// bodega procesa sus solicitudes. El envío es de mejor esfuerzo: un fallo se
// registra en el log y nunca afecta la operación que lo originó.
package notify

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/procurement"
	"github.com/jdruizm/Botica-api/pkg/config"
	"github.com/jdruizm/Botica-api/pkg/logger"
)

var _ procurement.Notifier = (*EmailNotifier)(nil)

// EmailNotifier envía los avisos por SMTP. Cada envío ocurre en su propia
// goroutine para no retener la petición que disparó la transición.
type EmailNotifier struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewEmailNotifier construye el notificador SMTP. Con la configuración
// incompleta (sin host o sin remitente) usar NewNopNotifier.
func NewEmailNotifier(cfg config.SMTPConfig, log *logger.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, log: log}
}

// RequestApproved avisa a la droguería que su solicitud fue aprobada.
func (n *EmailNotifier) RequestApproved(recipient string, req *dto.PurchaseRequestResponse) {
	subject := fmt.Sprintf("Solicitud %s aprobada", shortID(req.ID))
	body := fmt.Sprintf(
		`<p>Su solicitud de abastecimiento a la bodega <b>%s</b> fue <b>aprobada</b>.</p>
%s
<p>La bodega preparará el despacho en breve.</p>`,
		req.WarehouseName, itemsTable(req.Items))
	n.send(recipient, subject, body, req.ID)
}

// RequestRejected avisa a la droguería que su solicitud fue rechazada, con el
// motivo indicado por quien la procesó.
func (n *EmailNotifier) RequestRejected(recipient string, req *dto.PurchaseRequestResponse, reason string) {
	subject := fmt.Sprintf("Solicitud %s rechazada", shortID(req.ID))
	body := fmt.Sprintf(
		`<p>Su solicitud de abastecimiento a la bodega <b>%s</b> fue <b>rechazada</b>.</p>
<p>Motivo: %s</p>
%s`,
		req.WarehouseName, reason, itemsTable(req.Items))
	n.send(recipient, subject, body, req.ID)
}

func (n *EmailNotifier) send(recipient, subject, body, requestID string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.FromEmail))
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	go func() {
		dialer := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
		if err := dialer.DialAndSend(msg); err != nil {
			n.log.Error().Err(err).
				Str("recipient", recipient).
				Str("request_id", requestID).
				Msg("envío de notificación fallido")
			return
		}
		n.log.Info().
			Str("recipient", recipient).
			Str("request_id", requestID).
			Msg("notificación enviada")
	}()
}

func itemsTable(items []dto.RequestItemResponse) string {
	var b strings.Builder
	b.WriteString(`<table border="1" cellpadding="4" cellspacing="0"><tr><th>Medicamento</th><th>Cantidad</th></tr>`)
	for _, it := range items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>", it.MedicineName, it.QuantityRequested.String())
	}
	b.WriteString("</table>")
	return b.String()
}

// shortID recorta el uuid para el asunto del correo.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var _ procurement.Notifier = (*NopNotifier)(nil)

// NopNotifier descarta los avisos dejando rastro en el log (nivel debug).
// Se usa cuando no hay servidor SMTP configurado.
type NopNotifier struct {
	log *logger.Logger
}

// NewNopNotifier construye el notificador nulo.
func NewNopNotifier(log *logger.Logger) *NopNotifier {
	return &NopNotifier{log: log}
}

// RequestApproved no envía nada.
func (n *NopNotifier) RequestApproved(recipient string, req *dto.PurchaseRequestResponse) {
	n.log.Debug().Str("recipient", recipient).Str("request_id", req.ID).
		Msg("notificación de aprobación descartada: SMTP no configurado")
}

// RequestRejected no envía nada.
func (n *NopNotifier) RequestRejected(recipient string, req *dto.PurchaseRequestResponse, reason string) {
	n.log.Debug().Str("recipient", recipient).Str("request_id", req.ID).
		Msg("notificación de rechazo descartada: SMTP no configurado")
}
