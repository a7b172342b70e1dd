package validation

import (
	"strings"

	"encargos/internal/core/domain/model/order"
)

// CheckPotentialDuplicate reports whether an existing order shares the
// candidate's phone or name, its product and its calendar day. It never blocks;
// callers decide whether to ask for confirmation.
func CheckPotentialDuplicate(candidate *order.Order, existing []*order.Order) bool {
	for _, o := range existing {
		if o.ID().IsEqual(candidate.ID()) {
			continue
		}
		if !sameCustomer(candidate, o) {
			continue
		}
		if !strings.EqualFold(candidate.Product(), o.Product()) {
			continue
		}
		if order.CalendarDay(candidate.Date()).Equal(order.CalendarDay(o.Date())) {
			return true
		}
	}
	return false
}

func sameCustomer(a, b *order.Order) bool {
	ca, cb := a.Customer(), b.Customer()
	if ca.HasPhone() && ca.Phone() == cb.Phone() {
		return true
	}
	return strings.EqualFold(ca.Name(), cb.Name())
}
