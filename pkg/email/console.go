package email

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"kanam-academy-backend/internal/domain"
	"kanam-academy-backend/pkg/logger"
)

// ConsoleSender renders each message as MIME and writes it to the log instead of
// delivering it. Used in development.
type ConsoleSender struct {
	mu   sync.Mutex
	sent []domain.EmailMessage
}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (s *ConsoleSender) Send(ctx context.Context, msg domain.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := render(msg)
	if err != nil {
		return err
	}
	logger.Log.Info("console email",
		zap.String("to", logger.MaskEmail(msg.To)),
		zap.String("subject", msg.Subject),
		zap.String("mime", body),
	)

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns the messages rendered so far.
func (s *ConsoleSender) Sent() []domain.EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.EmailMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

func render(msg domain.EmailMessage) (string, error) {
	body := new(strings.Builder)
	altW := multipart.NewWriter(body)

	_, _ = fmt.Fprintf(body, "From: %s\r\n", msg.From)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		_, _ = fmt.Fprintf(body, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	_, _ = fmt.Fprint(body, "MIME-Version: 1.0\r\n")
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", msg.Subject)
	_, _ = fmt.Fprintf(body, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", altW.Boundary())

	w, err := altW.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=UTF-8"}})
	if err != nil {
		return "", fmt.Errorf("creating text/plain part: %w", err)
	}
	_, _ = fmt.Fprintf(w, "%s\r\n", msg.TextBody)

	if msg.HTMLBody != "" {
		w, err = altW.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
		if err != nil {
			return "", fmt.Errorf("creating text/html part: %w", err)
		}
		_, _ = fmt.Fprintf(w, "%s\r\n", msg.HTMLBody)
	}

	if err := altW.Close(); err != nil {
		return "", err
	}
	return body.String(), nil
}
