package person

import (
	"fmt"
	"strings"

	"encargos/internal/pkg/errs"
)

// Channel is a way to tell a customer their order arrived.
type Channel int

const (
	UnknownChannel Channel = iota
	WhatsApp
	Email
)

func (c Channel) String() string {
	switch c {
	case WhatsApp:
		return "whatsapp"
	case Email:
		return "email"
	case UnknownChannel:
	}
	return "unknown"
}

// ParseChannel converts "whatsapp" or "email" into a Channel.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whatsapp":
		return WhatsApp, nil
	case "email":
		return Email, nil
	}
	return UnknownChannel, errs.NewValueIsInvalidErrorWithCause("channel", fmt.Errorf("%q is not a valid channel", s))
}
