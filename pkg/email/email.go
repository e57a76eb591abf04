package email

import (
	"fmt"
	"net/mail"

	"kanam-academy-backend/internal/domain"
)

// Driver names accepted by NewSender.
const (
	DriverSMTP     = "smtp"
	DriverSendgrid = "sendgrid"
	DriverConsole  = "console"
)

// NewSender returns the Mailer for the configured driver. An empty driver means SMTP.
func NewSender(settings domain.MailSettings) (domain.Mailer, error) {
	switch settings.Driver {
	case DriverSMTP, "":
		return NewSMTPSender(settings), nil
	case DriverSendgrid:
		return NewSendgridSender(settings), nil
	case DriverConsole:
		return NewConsoleSender(), nil
	default:
		return nil, fmt.Errorf("email: unknown driver %q", settings.Driver)
	}
}

// parseAddress accepts either a bare address or "Name <address>".
func parseAddress(s string) (*mail.Address, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return nil, fmt.Errorf("email: invalid address %q: %w", s, err)
	}
	return addr, nil
}
