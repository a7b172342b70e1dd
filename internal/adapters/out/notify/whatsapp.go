package notify

import (
	"net/url"
	"strings"

	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
)

const waBaseURL = "https://wa.me/"

// WhatsAppConfig configures the link builder.
type WhatsAppConfig struct {
	// CountryCode is prepended to numbers written without an international prefix.
	CountryCode string `koanf:"country_code"`
	ShopName    string `koanf:"shop_name"`
}

// WhatsAppLinker builds wa.me links with the notification text prefilled.
type WhatsAppLinker struct {
	cfg WhatsAppConfig
}

func NewWhatsAppLinker(cfg WhatsAppConfig) WhatsAppLinker {
	return WhatsAppLinker{cfg: cfg}
}

// WhatsAppLink returns false when the person has no usable phone number.
func (l WhatsAppLinker) WhatsAppLink(o *order.Order, p *person.Person) (string, bool) {
	if o == nil || p == nil {
		return "", false
	}
	number := l.internationalNumber(p.Phone())
	if number == "" {
		return "", false
	}

	msg := NewMessage(o, p, l.cfg.ShopName)
	return waBaseURL + number + "?text=" + url.QueryEscape(msg.Body), true
}

// internationalNumber keeps the digits of phone. A leading "+" or "00" marks a
// number that already carries its country code.
func (l WhatsAppLinker) internationalNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	international := strings.HasPrefix(phone, "+") || strings.HasPrefix(phone, "00")

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}

	if international {
		return strings.TrimPrefix(digits, "00")
	}
	return l.cfg.CountryCode + digits
}
