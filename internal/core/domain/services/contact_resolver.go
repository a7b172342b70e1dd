package services

import (
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
)

// ContactResolver finds the canonical person behind a name and phone pair.
//
// Matching order:
//   - a person with both the phone and the name
//   - a person with the phone
//   - a person with the name
//
// Names and phones are normalized before comparing. Name comparison is exact,
// the same rule the cascades use to find unlinked orders.
type ContactResolver struct{}

func NewContactResolver() ContactResolver {
	return ContactResolver{}
}

// Resolve returns the best single match among candidates, if any.
func (ContactResolver) Resolve(candidates []*person.Person, phone, name string) (*person.Person, bool) {
	phone = kernel.NormalizePhone(phone)
	name = kernel.NormalizeName(name)

	var byPhone, byName *person.Person
	for _, p := range candidates {
		phoneMatch := phone != "" && p.Phone() == phone
		nameMatch := name != "" && p.Name() == name
		switch {
		case phoneMatch && nameMatch:
			return p, true
		case phoneMatch && byPhone == nil:
			byPhone = p
		case nameMatch && byName == nil:
			byName = p
		}
	}

	if byPhone != nil {
		return byPhone, true
	}
	if byName != nil {
		return byName, true
	}
	return nil, false
}

// CanonicalFor returns the person an order belongs to: the linked person when
// the order has a link, otherwise the person resolved from its cached contact.
func (r ContactResolver) CanonicalFor(o *order.Order, persons []*person.Person) (*person.Person, bool) {
	if id := o.PersonID(); id != nil {
		for _, p := range persons {
			if p.ID().IsEqual(*id) {
				return p, true
			}
		}
	}
	c := o.Customer()
	return r.Resolve(persons, c.Phone(), c.Name())
}
