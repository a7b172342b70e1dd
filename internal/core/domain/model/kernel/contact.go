package kernel

import (
	"strings"

	"encargos/internal/pkg/errs"
)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

// NormalizePhone strips spaces, dashes and parentheses so that phones typed
// differently compare equal. It does not validate the result.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// NormalizeName trims and collapses inner whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Contact is the customer identity copied onto an order: a display name and an
// optional phone. It is a plain value; format rules live in the validation package.
type Contact struct {
	name  string
	phone string
}

// NewContact normalizes both parts. The name is required.
func NewContact(name, phone string) (Contact, error) {
	c := Contact{
		name:  NormalizeName(name),
		phone: NormalizePhone(phone),
	}
	if c.name == "" {
		return Contact{}, errs.NewValueIsRequiredError("customer name")
	}
	return c, nil
}

func (c Contact) Name() string {
	return c.name
}

func (c Contact) Phone() string {
	return c.phone
}

// HasPhone reports whether a phone was given.
func (c Contact) HasPhone() bool {
	return c.phone != ""
}

// IsComplete reports whether both name and phone are present.
func (c Contact) IsComplete() bool {
	return c.name != "" && c.phone != ""
}

// WithName returns a copy carrying name.
func (c Contact) WithName(name string) Contact {
	c.name = NormalizeName(name)
	return c
}

// WithPhone returns a copy carrying phone.
func (c Contact) WithPhone(phone string) Contact {
	c.phone = NormalizePhone(phone)
	return c
}

func (c Contact) IsEqual(other Contact) bool {
	return c.name == other.name && c.phone == other.phone
}
