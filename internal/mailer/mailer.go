// Package mailer sends admin notification emails about customer creation
// results, optionally attaching the signed contract PDF.
package mailer

import (
	"context"
	"sync"
)

// Attachment is a file included with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Email is one outbound message. Sender and recipients come from the
// mailer, not the message.
type Email struct {
	Subject    string
	Body       string
	Attachment *Attachment
}

// Mailer delivers notification emails. Satisfied by SMTPMailer; narrow
// interface for testability.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// Mock records sent emails for tests.
type Mock struct {
	mu   sync.Mutex
	Sent []Email

	// Err, when set, is returned from every Send.
	Err error
}

func (m *Mock) Send(_ context.Context, email Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, email)
	return nil
}
