package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// MaxAmount is the largest amount an order may record as paid.
	MaxAmount = decimal.RequireFromString("999999.99")
)

// Details holds the editable, non-identity fields of an order.
type Details struct {
	Date      time.Time
	Product   string
	Lab       string
	Warehouse string
	Amount    decimal.Decimal
	Notes     string
}

// Order represents a customer special order ("encargo"). It is the aggregate root
// that owns the workflow flags, the notified flag and the cached customer contact.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and selling point
//   - Must name a product and a calendar date
//   - Amount paid is between 0 and MaxAmount with two decimals
//   - Workflow flags only change through a resolved Transition
//
// The customer name and phone are a cached copy. When personID is set the linked
// person is the source of truth and the cascades keep the copy fresh.
type Order struct {
	id       kernel.UUID
	tenant   kernel.TenantID
	details  Details
	stages   Stages
	customer kernel.Contact
	personID *kernel.UUID
	notified bool

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order with every flag off.
//
// Example:
//
//	customer, _ := kernel.NewContact("Ana", "600111222")
//	o, err := order.NewOrder(kernel.NewUUID(), tenant, order.Details{
//	    Date:    time.Now(),
//	    Product: "Aspirina",
//	    Amount:  decimal.NewFromInt(5),
//	}, customer)
func NewOrder(id kernel.UUID, tenant kernel.TenantID, details Details, customer kernel.Contact) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenant(tenant),
		o.setDetails(details),
		o.setCustomer(customer),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order from persisted state. Stored flags are taken as
// is, including combinations outside the staircase.
func RestoreOrder(
	id kernel.UUID,
	tenant kernel.TenantID,
	details Details,
	customer kernel.Contact,
	personID *kernel.UUID,
	stages Stages,
	notified bool,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		stages:        stages,
		notified:      notified,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenant(tenant),
		o.setDetails(details),
		o.setCustomer(customer),
		o.LinkPerson(personID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Tenant() kernel.TenantID {
	return o.tenant
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Date() time.Time {
	return o.details.Date
}

func (o *Order) Product() string {
	return o.details.Product
}

func (o *Order) Lab() string {
	return o.details.Lab
}

func (o *Order) Warehouse() string {
	return o.details.Warehouse
}

func (o *Order) Amount() decimal.Decimal {
	return o.details.Amount
}

func (o *Order) Notes() string {
	return o.details.Notes
}

func (o *Order) Stages() Stages {
	return o.stages
}

func (o *Order) Customer() kernel.Contact {
	return o.customer
}

// PersonID returns the linked person, or nil for orders not yet linked.
func (o *Order) PersonID() *kernel.UUID {
	return o.personID
}

func (o *Order) Notified() bool {
	return o.notified
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// UpdateDetails replaces the editable fields after validating them.
func (o *Order) UpdateDetails(details Details) error {
	if err := o.setDetails(details); err != nil {
		return err
	}
	o.touch()
	return nil
}

// SetCustomer replaces the cached customer contact.
func (o *Order) SetCustomer(customer kernel.Contact) error {
	if err := o.setCustomer(customer); err != nil {
		return err
	}
	o.touch()
	return nil
}

// LinkPerson points the order at its canonical person. Nil unlinks.
func (o *Order) LinkPerson(personID *kernel.UUID) error {
	if kernel.SameLink(o.personID, personID) {
		return nil
	}
	if personID == nil {
		o.personID = nil
		return nil
	}
	if err := personID.Validate(); err != nil {
		return err
	}
	id := *personID
	o.personID = &id
	return nil
}

// RequestStage classifies a change of one workflow flag. See Stages.Request.
func (o *Order) RequestStage(stage Stage, value bool) (Transition, error) {
	return o.stages.Request(stage, value)
}

// ApplyPatch writes a resolved transition. It reports whether received went
// from false to true.
func (o *Order) ApplyPatch(p Patch) (receivedTurnedOn bool) {
	before := o.stages
	o.stages = o.stages.Apply(p)
	o.touch()
	return !before.Received() && o.stages.Received()
}

// MarkNotified records that the customer was told the order arrived.
func (o *Order) MarkNotified() {
	o.notified = true
	o.touch()
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	o.tenant = tenant
	return nil
}

func (o *Order) setCustomer(customer kernel.Contact) error {
	if customer.Name() == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customer = customer
	return nil
}

// setDetails validates the editable fields.
// Date is truncated to a calendar day in UTC.
func (o *Order) setDetails(d Details) error {
	d.Product = strings.TrimSpace(d.Product)
	d.Lab = strings.TrimSpace(d.Lab)
	d.Warehouse = strings.TrimSpace(d.Warehouse)
	d.Notes = strings.TrimSpace(d.Notes)

	var errList []error
	if d.Date.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("date"))
	}
	if d.Product == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product"))
	}
	if d.Amount.IsNegative() || d.Amount.GreaterThan(MaxAmount) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("amount", d.Amount.String(), "0", MaxAmount.String()))
	}
	if !d.Amount.Equal(d.Amount.Round(2)) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s has more than two decimals", d.Amount)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	d.Date = CalendarDay(d.Date)
	o.details = d
	return nil
}

// CalendarDay drops the clock part of t, keeping its calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
