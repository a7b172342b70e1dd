package commands

import (
	"context"
	"errors"

	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/services"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/errs"
)

// ensureCatalogItems creates the product, lab and warehouse named by d when
// they are not in the catalog yet.
func ensureCatalogItems(
	ctx context.Context,
	repo ports.CatalogRepository,
	tenant kernel.TenantID,
	d order.Details,
) error {
	refs := []struct {
		kind catalog.Kind
		name string
	}{
		{catalog.Product, d.Product},
		{catalog.Laboratory, d.Lab},
		{catalog.Warehouse, d.Warehouse},
	}

	for _, ref := range refs {
		if ref.name == "" {
			continue
		}
		_, err := repo.FindByName(ctx, tenant, ref.kind, ref.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		item, err := catalog.NewItem(kernel.NewUUID(), tenant, ref.kind, ref.name)
		if err != nil {
			return err
		}
		if err = repo.Add(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// findByPhone returns the person owning phone, or nil.
func findByPhone(
	ctx context.Context,
	repo ports.PersonRepository,
	tenant kernel.TenantID,
	phone string,
) (*person.Person, error) {
	if phone == "" {
		return nil, nil
	}
	candidates, err := repo.FindByContact(ctx, tenant, phone, "")
	if err != nil {
		return nil, err
	}
	p, ok := services.NewContactResolver().Resolve(candidates, phone, "")
	if !ok {
		return nil, nil
	}
	return p, nil
}

// findOwner returns the person behind o: the linked one, else the one sharing its phone.
func findOwner(ctx context.Context, repo ports.PersonRepository, o *order.Order) (*person.Person, error) {
	if id := o.PersonID(); id != nil {
		p, err := repo.Get(ctx, o.Tenant(), *id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}
	return findByPhone(ctx, repo, o.Tenant(), o.Customer().Phone())
}

// findCustomer decides who to notify about o: the linked person, else the best
// contact match, where a name-only match is good enough.
func findCustomer(ctx context.Context, repo ports.PersonRepository, o *order.Order) (*person.Person, error) {
	var candidates []*person.Person
	if id := o.PersonID(); id != nil {
		linked, err := repo.Get(ctx, o.Tenant(), *id)
		switch {
		case err == nil:
			candidates = []*person.Person{linked}
		case !errors.Is(err, errs.ErrObjectNotFound):
			return nil, err
		}
	}
	if len(candidates) == 0 {
		c := o.Customer()
		var err error
		if candidates, err = repo.FindByContact(ctx, o.Tenant(), c.Phone(), c.Name()); err != nil {
			return nil, err
		}
	}
	p, _ := services.NewContactResolver().CanonicalFor(o, candidates)
	return p, nil
}

// Causes of the ConflictErrors raised by identity checks.
var (
	ErrPhoneTaken = errors.New("phone belongs to another person")
	ErrNameTaken  = errors.New("name already in the catalog")
)

// ensurePhoneIsFree fails with a ConflictError caused by ErrPhoneTaken when
// another person owns phone.
func ensurePhoneIsFree(
	ctx context.Context,
	repo ports.PersonRepository,
	tenant kernel.TenantID,
	phone string,
	exclude *kernel.UUID,
) error {
	taken, err := repo.ExistsPhoneForOther(ctx, tenant, phone, exclude)
	if err != nil {
		return err
	}
	if taken {
		return errs.NewConflictErrorWithCause("another person", phone, ErrPhoneTaken)
	}
	return nil
}

type nopRecorder struct{}

func (nopRecorder) StageChanged(string, bool)        {}
func (nopRecorder) NotificationSent(string, bool)    {}
func (nopRecorder) CascadeApplied(string, int64)     {}
func (nopRecorder) ConsistencyChecked(int, int, int) {}

func recorderOrNop(r ports.Recorder) ports.Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
