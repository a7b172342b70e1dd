package notify

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/logging"
	"encargos/internal/pkg/retry"

	"go.uber.org/zap"
)

// SMTPConfig configures the email sender. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	ShopName string `koanf:"shop_name"`
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

func (c SMTPConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("smtp port %d is out of range", c.Port)
	}
	if c.From == "" {
		return errors.New("smtp from address is required")
	}
	return nil
}

// ErrEmailDisabled is returned when no SMTP relay is configured.
var ErrEmailDisabled = errors.New("smtp is not configured")

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailSender sends notifications through an SMTP relay. Transient relay
// failures are retried with the configured retrier.
type EmailSender struct {
	cfg     SMTPConfig
	retrier *retry.Retrier
	logger  *zap.Logger
	send    sendFunc
	now     func() time.Time
}

func NewEmailSender(cfg SMTPConfig, retrier *retry.Retrier, logger *zap.Logger) *EmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailSender{
		cfg:     cfg,
		retrier: retrier,
		logger:  logger,
		send:    smtp.SendMail,
		now:     time.Now,
	}
}

// Enabled reports whether an SMTP relay is configured.
func (s *EmailSender) Enabled() bool {
	return s.cfg.Enabled()
}

func (s *EmailSender) SendEmailNotification(ctx context.Context, o *order.Order, p *person.Person) error {
	if o == nil || p == nil {
		return errors.New("order and person are required")
	}
	if p.Email() == "" {
		return errors.New("person has no email address")
	}

	msg := NewMessage(o, p, s.cfg.ShopName)
	log := logging.For(ctx, s.logger).With(
		zap.String("order_id", o.ID().String()),
		zap.String("to", p.Email()),
	)

	if !s.cfg.Enabled() {
		log.Warn("smtp disabled, email notification not sent", zap.String("subject", msg.Subject))
		return ErrEmailDisabled
	}

	raw := s.compose(p.Email(), msg)
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.send(addr, auth, s.cfg.From, []string{p.Email()}, raw)
	})
	if err != nil {
		log.Warn("email notification failed", zap.Error(err))
		return fmt.Errorf("send email to %s: %w", p.Email(), err)
	}

	log.Info("email notification sent")
	return nil
}

func (s *EmailSender) compose(to string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + s.cfg.From + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("Date: " + s.now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
