package mail

import (
	"context"
	"io"
	"log/slog"
)

// Message is one email.
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Mail sends messages.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// Log is a Mail that only logs recipients and subject.
type Log struct{}

func (Log) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "mail suppressed", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (Log) Close() error { return nil }
