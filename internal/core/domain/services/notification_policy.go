package services

import (
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
)

// NotificationPolicy decides whether a stage change must stop and ask the
// operator to notify the customer.
type NotificationPolicy struct{}

func NewNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{}
}

// Offer returns the channels to offer when the patch turns received on for o
// and the customer has at least one channel. It returns nil otherwise.
func (NotificationPolicy) Offer(o *order.Order, patch order.Patch, customer *person.Person) []person.Channel {
	if o.Stages().Received() || !patch.Sets(order.Received, true) {
		return nil
	}
	if customer == nil {
		return nil
	}
	channels := customer.Channels()
	if len(channels) == 0 {
		return nil
	}
	return channels
}
