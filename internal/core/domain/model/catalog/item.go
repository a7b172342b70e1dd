// Package catalog provides the reference lists an order names by value:
// products, laboratories and warehouses.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not built via NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// NameMaxLength bounds catalog names.
const NameMaxLength = 100

// Kind tells which reference list an item belongs to.
type Kind int

const (
	UnknownKind Kind = iota
	Product
	Laboratory
	Warehouse
)

func (k Kind) String() string {
	switch k {
	case Product:
		return "product"
	case Laboratory:
		return "laboratory"
	case Warehouse:
		return "warehouse"
	case UnknownKind:
	}
	return "unknown"
}

// Validate checks that k is a known kind.
func (k Kind) Validate() error {
	if k < Product || k > Warehouse {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// ParseKind accepts singular and plural names: "product(s)", "laboratory/laboratories/lab(s)", "warehouse(s)".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product", "products":
		return Product, nil
	case "laboratory", "laboratories", "lab", "labs":
		return Laboratory, nil
	case "warehouse", "warehouses":
		return Warehouse, nil
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a catalog kind", s))
}

// Item is a named entry of one reference list.
type Item struct {
	id        kernel.UUID
	tenant    kernel.TenantID
	kind      Kind
	name      string
	createdAt time.Time

	isConstructed bool
}

// NewItem creates a catalog entry.
func NewItem(id kernel.UUID, tenant kernel.TenantID, kind Kind, name string) (*Item, error) {
	return RestoreItem(id, tenant, kind, name, time.Now().UTC())
}

// RestoreItem rebuilds a catalog entry from storage.
func RestoreItem(id kernel.UUID, tenant kernel.TenantID, kind Kind, name string, createdAt time.Time) (*Item, error) {
	item := &Item{
		id:            id,
		tenant:        tenant,
		kind:          kind,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		tenant.Validate(),
		kind.Validate(),
		item.setName(name),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Tenant() kernel.TenantID {
	return i.tenant
}

func (i *Item) Kind() Kind {
	return i.kind
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// Rename changes the name.
func (i *Item) Rename(name string) error {
	return i.setName(name)
}

func (i *Item) setName(name string) error {
	name = kernel.NormalizeName(name)
	if name == "" {
		return errs.NewValueIsRequiredError(i.kind.String() + " name")
	}
	if n := len([]rune(name)); n > NameMaxLength {
		return errs.NewValueIsOutOfRangeError(i.kind.String()+" name length", n, 1, NameMaxLength)
	}
	i.name = name
	return nil
}
