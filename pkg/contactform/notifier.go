package contactform

import (
	"fmt"
	"io"
	"sync"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationFailure NotificationKind = "failure"
)

// Notification is the user-facing outcome of a submit.
type Notification struct {
	Kind        NotificationKind
	Title       string
	Description string
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// WriterNotifier prints notifications as lines of text.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	mark := "✓"
	if note.Kind == NotificationFailure {
		mark = "✗"
	}
	_, _ = fmt.Fprintf(n.w, "%s %s\n", mark, note.Title)
	if note.Description != "" {
		_, _ = fmt.Fprintf(n.w, "  %s\n", note.Description)
	}
}
