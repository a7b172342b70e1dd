package ports

import (
	"context"

	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
)

// EmailSender delivers the "your order arrived" email. A nil error means the
// message was accepted for delivery. A sender that is not Enabled is never
// offered as a channel.
type EmailSender interface {
	Enabled() bool
	SendEmailNotification(ctx context.Context, o *order.Order, p *person.Person) error
}

// WhatsAppLinker builds a click-to-chat link. Delivery is done by the operator
// opening it, so there is nothing to confirm. The bool is false when no link
// can be built.
type WhatsAppLinker interface {
	WhatsAppLink(o *order.Order, p *person.Person) (string, bool)
}
