package contactform

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrIncomplete       = errors.New("contactform: name, email, and message are required")
	ErrSubmitInProgress = errors.New("contactform: a submission is already in progress")
)

const genericFailureReason = "We could not send your message. Please try again."

// State is the composer's submission state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// Composer owns one draft and submits it. At most one submission is in flight.
type Composer struct {
	mu         sync.Mutex
	draft      Draft
	submitting atomic.Bool

	transport Transport
	notifier  Notifier
}

func NewComposer(transport Transport, notifier Notifier) *Composer {
	return &Composer{
		draft:     NewDraft(),
		transport: transport,
		notifier:  notifier,
	}
}

// Draft returns a copy of the current draft.
func (c *Composer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Composer) UpdateField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.UpdateField(name, value)
}

func (c *Composer) Validate() bool {
	return c.Draft().Validate()
}

func (c *Composer) State() State {
	if c.submitting.Load() {
		return StateSubmitting
	}
	return StateIdle
}

// Submit sends the draft. An incomplete draft or a submission already in flight
// returns an error without touching the network. On success the draft is reset; on
// failure it is kept and the notification carries the server's reason when given.
func (c *Composer) Submit(ctx context.Context) error {
	if !c.Validate() {
		return ErrIncomplete
	}
	if !c.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer c.submitting.Store(false)

	req := c.Draft().Request()
	if err := c.transport.Submit(ctx, req); err != nil {
		c.notifier.Notify(Notification{
			Kind:        NotificationFailure,
			Title:       "Message not sent",
			Description: failureReason(err),
		})
		return err
	}

	c.mu.Lock()
	c.draft.Reset()
	c.mu.Unlock()

	c.notifier.Notify(Notification{
		Kind:        NotificationSuccess,
		Title:       "Message sent",
		Description: "Thanks for reaching out. We will reply within 1-2 business days.",
	})
	return nil
}

func failureReason(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return genericFailureReason
}
