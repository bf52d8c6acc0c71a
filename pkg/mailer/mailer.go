package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"

	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/models"
)

// Mailer sends transactional mail over SMTP. When no SMTP host is
// configured every send becomes a logged no-op, so local setups work
// without a mail server.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func New() *Mailer {
	return &Mailer{
		host: global.GetEnvOrDefault("SMTP_HOST", ""),
		port: global.GetEnvOrDefault("SMTP_PORT", "587"),
		user: global.GetEnvOrDefault("SMTP_USER", ""),
		pass: global.GetEnvOrDefault("SMTP_PASSWORD", ""),
		from: global.GetEnvOrDefault("SMTP_FROM", "Vitrina <no-reply@vitrina.cl>"),
	}
}

// SendReceipt mails the order receipt to the customer. Fire and forget:
// failures are logged, never propagated, so a mail outage cannot affect
// checkout.
func (m *Mailer) SendReceipt(order *models.Order) {
	if order == nil || order.CustomerEmail == "" {
		return
	}
	if m.host == "" {
		logger.L.Infow("mail disabled, skipping receipt", "pedido_id", order.Number)
		return
	}

	go func() {
		msg := email.NewEmail()
		msg.From = m.from
		msg.To = []string{order.CustomerEmail}
		msg.Subject = fmt.Sprintf("Boleta de tu pedido #%d", order.Number)
		msg.Text = []byte(receiptBody(order))

		addr := m.host + ":" + m.port
		var auth smtp.Auth
		if m.user != "" {
			auth = smtp.PlainAuth("", m.user, m.pass, m.host)
		}
		if err := msg.Send(addr, auth); err != nil {
			logger.L.Warnw("failed to send receipt email",
				"pedido_id", order.Number, "error", err)
			return
		}
		logger.L.Infow("receipt email sent", "pedido_id", order.Number)
	}()
}

func receiptBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "¡Gracias por tu compra!\n\nPedido #%d\n", order.Number)
	fmt.Fprintf(&b, "Fecha: %s\n\n", order.CreatedAt.Format("02/01/2006 15:04"))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %s x%d  $%.0f\n", item.Name, item.Quantity, item.Subtotal)
	}
	fmt.Fprintf(&b, "\nSubtotal: $%.0f\n", order.Totals.Subtotal)
	fmt.Fprintf(&b, "IVA: $%.0f\n", order.Totals.IVA)
	fmt.Fprintf(&b, "Envío: $%.0f\n", order.Totals.Shipping)
	fmt.Fprintf(&b, "Total: $%.0f\n", order.Totals.GrandTotal)
	b.WriteString("\nEquipo Vitrina\n")
	return b.String()
}
