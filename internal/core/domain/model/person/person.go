package person

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"
)

// ErrPersonIsNotConstructed is returned when a Person was not built via NewPerson or RestorePerson.
var ErrPersonIsNotConstructed = errors.New("Person must be created via NewPerson constructor")

// Preferences holds the notification opt-ins of a person.
type Preferences struct {
	Phone bool
	Email bool
}

// Person is the canonical customer record. Orders link to it and keep a cached
// copy of its name and phone.
//
// Invariants:
//   - name and phone are required; phone is stored normalized
//   - email notifications require an email address
//
// Phone uniqueness within a selling point is checked by the application before
// writes, not by this type.
type Person struct {
	id          kernel.UUID
	tenant      kernel.TenantID
	name        string
	phone       string
	email       string
	preferences Preferences

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPerson creates a person.
func NewPerson(
	id kernel.UUID,
	tenant kernel.TenantID,
	name, phone, email string,
	prefs Preferences,
) (*Person, error) {
	now := time.Now().UTC()
	return build(id, tenant, name, phone, email, prefs, now, now)
}

// RestorePerson rebuilds a person from storage.
func RestorePerson(
	id kernel.UUID,
	tenant kernel.TenantID,
	name, phone, email string,
	prefs Preferences,
	createdAt, updatedAt time.Time,
) (*Person, error) {
	return build(id, tenant, name, phone, email, prefs, createdAt, updatedAt)
}

func build(
	id kernel.UUID,
	tenant kernel.TenantID,
	name, phone, email string,
	prefs Preferences,
	createdAt, updatedAt time.Time,
) (*Person, error) {
	p := &Person{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		tenant.Validate(),
		p.setName(name),
		p.setPhone(phone),
	); err != nil {
		return nil, err
	}
	p.id = id
	p.tenant = tenant

	if err := p.setContactPreferences(email, prefs); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Person instance was properly constructed.
func (p *Person) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPersonIsNotConstructed
	}
	return nil
}

func (p *Person) ID() kernel.UUID {
	return p.id
}

func (p *Person) Tenant() kernel.TenantID {
	return p.tenant
}

func (p *Person) Name() string {
	return p.name
}

func (p *Person) Phone() string {
	return p.phone
}

func (p *Person) Email() string {
	return p.email
}

func (p *Person) Preferences() Preferences {
	return p.preferences
}

func (p *Person) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Person) UpdatedAt() time.Time {
	return p.updatedAt
}

// Contact returns the name and phone as a kernel.Contact.
func (p *Person) Contact() kernel.Contact {
	c, _ := kernel.NewContact(p.name, p.phone)
	return c
}

// Rename changes the name.
func (p *Person) Rename(name string) error {
	if err := p.setName(name); err != nil {
		return err
	}
	p.touch()
	return nil
}

// ChangePhone changes the phone.
func (p *Person) ChangePhone(phone string) error {
	if err := p.setPhone(phone); err != nil {
		return err
	}
	p.touch()
	return nil
}

// UpdateContactPreferences replaces the email and opt-ins together so the
// email invariant can be checked against the final state.
func (p *Person) UpdateContactPreferences(email string, prefs Preferences) error {
	if err := p.setContactPreferences(email, prefs); err != nil {
		return err
	}
	p.touch()
	return nil
}

// Channels lists the channels this person can be notified on.
// WhatsApp needs a phone and the phone opt-in; Email needs an address and the email opt-in.
func (p *Person) Channels() []Channel {
	channels := make([]Channel, 0, 2)
	if p.phone != "" && p.preferences.Phone {
		channels = append(channels, WhatsApp)
	}
	if p.email != "" && p.preferences.Email {
		channels = append(channels, Email)
	}
	return channels
}

// Accepts reports whether c is one of Channels().
func (p *Person) Accepts(c Channel) bool {
	for _, available := range p.Channels() {
		if available == c {
			return true
		}
	}
	return false
}

func (p *Person) touch() {
	p.updatedAt = time.Now().UTC()
}

func (p *Person) setName(name string) error {
	name = kernel.NormalizeName(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Person) setPhone(phone string) error {
	phone = kernel.NormalizePhone(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	p.phone = phone
	return nil
}

func (p *Person) setContactPreferences(email string, prefs Preferences) error {
	email = strings.TrimSpace(email)
	if prefs.Email && email == "" {
		return errs.NewValueIsInvalidErrorWithCause(
			"email notifications", fmt.Errorf("email notifications need an email address"))
	}
	p.email = email
	p.preferences = prefs
	return nil
}
