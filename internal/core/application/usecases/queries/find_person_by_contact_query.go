package queries

import (
	"context"
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/services"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/guard"
)

var ErrFindPersonByContactQueryIsNotConstructed = errors.New(
	"FindPersonByContactQuery must be created via NewFindPersonByContactQuery constructor",
)

// FindPersonByContactQuery resolves the canonical person for a phone and an
// optional name: exact match first, then phone, then name.
type FindPersonByContactQuery struct {
	tenant kernel.TenantID
	phone  string
	name   string

	guard guard.ConstructorGuard
}

func NewFindPersonByContactQuery(tenant kernel.TenantID, phone, name string) (FindPersonByContactQuery, error) {
	phone = kernel.NormalizePhone(phone)
	name = kernel.NormalizeName(name)

	var contactErr error
	if phone == "" && name == "" {
		contactErr = errs.NewValueIsRequiredError("phone or name")
	}
	if err := errors.Join(tenant.Validate(), contactErr); err != nil {
		return FindPersonByContactQuery{}, err
	}

	return FindPersonByContactQuery{tenant: tenant, phone: phone, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (q FindPersonByContactQuery) Validate() error {
	return q.guard.Validate(ErrFindPersonByContactQueryIsNotConstructed)
}

// FindPersonByContactQueryHandler reads through the repositories so that the
// lookup uses the same matching as the cascades.
type FindPersonByContactQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	resolver   services.ContactResolver
}

func NewFindPersonByContactQueryHandler(uowFactory ports.UnitOfWorkFactory) FindPersonByContactQueryHandler {
	return FindPersonByContactQueryHandler{
		uowFactory: uowFactory,
		resolver:   services.NewContactResolver(),
	}
}

// Handle returns ObjectNotFoundError when nobody matches.
func (h FindPersonByContactQueryHandler) Handle(ctx context.Context, query FindPersonByContactQuery) (*person.Person, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.uowFactory.Create().PersonRepository().FindByContact(ctx, query.tenant, query.phone, query.name)
	if err != nil {
		return nil, err
	}

	p, ok := h.resolver.Resolve(candidates, query.phone, query.name)
	if !ok {
		return nil, errs.NewObjectNotFoundError("person", query.phone+" "+query.name)
	}
	return p, nil
}
