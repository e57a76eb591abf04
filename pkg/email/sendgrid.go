package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"kanam-academy-backend/internal/domain"
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendgridSender delivers messages through the SendGrid v3 mail API.
type SendgridSender struct {
	client   sendgridClient
	fromName string
}

func NewSendgridSender(settings domain.MailSettings) *SendgridSender {
	return &SendgridSender{
		client:   sendgrid.NewSendClient(settings.APIKey),
		fromName: settings.SiteName,
	}
}

func (s *SendgridSender) Send(ctx context.Context, msg domain.EmailMessage) error {
	m, err := s.prepare(msg)
	if err != nil {
		return err
	}

	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("failed to send email: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (s *SendgridSender) prepare(msg domain.EmailMessage) (*sgmail.SGMailV3, error) {
	from, err := parseAddress(msg.From)
	if err != nil {
		return nil, err
	}
	to, err := parseAddress(msg.To)
	if err != nil {
		return nil, err
	}

	fromName := from.Name
	if fromName == "" {
		fromName = s.fromName
	}

	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(to.Name, to.Address))

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(fromName, from.Address))
	m.AddPersonalizations(p)

	if msg.ReplyTo != "" {
		replyTo, err := parseAddress(msg.ReplyTo)
		if err != nil {
			return nil, err
		}
		m.SetReplyTo(sgmail.NewEmail(replyTo.Name, replyTo.Address))
	}

	m.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	if msg.HTMLBody != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}
	return m, nil
}
