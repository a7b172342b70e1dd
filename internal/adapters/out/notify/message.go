// Package notify implements the customer notification ports: an SMTP email
// sender and a wa.me click-to-chat link builder. Both render the same
// "your order arrived" message.
package notify

import (
	"fmt"
	"strings"

	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
)

const dateLayout = "02/01/2006"

// Message is the text sent to a customer when their order is ready for pickup.
type Message struct {
	Subject string
	Body    string
}

// NewMessage renders the notification for o. shop is the display name of the
// selling point and may be empty.
func NewMessage(o *order.Order, p *person.Person, shop string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", p.Name())
	fmt.Fprintf(&b, "Tu encargo de %s del %s ya está disponible para recoger", o.Product(), o.Date().Format(dateLayout))
	if shop != "" {
		fmt.Fprintf(&b, " en %s", shop)
	}
	b.WriteString(".\n")
	if o.Amount().IsPositive() {
		fmt.Fprintf(&b, "Importe ya abonado: %s €.\n", o.Amount().StringFixed(2))
	}
	b.WriteString("\n¡Gracias!")

	return Message{
		Subject: fmt.Sprintf("Tu encargo de %s ha llegado", o.Product()),
		Body:    b.String(),
	}
}
