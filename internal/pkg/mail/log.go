package mail

import (
	"context"
	"log/slog"
)

// Log is a dry-run Mail that only logs what would have been sent.
type Log struct {
	defaultFrom string
}

// NewLog returns a dry-run Mail using from when Message.From is empty.
func NewLog(from string) *Log {
	return &Log{defaultFrom: from}
}

// Send validates the message the same way SMTP does and logs it.
func (l *Log) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := buildMessage(l.defaultFrom, msg); err != nil {
		return err
	}

	slog.InfoContext(ctx, "mail dry run", "to", msg.To, "subject", msg.Subject, "html_body", msg.HTMLBody)

	return nil
}

// Close implements io.Closer for interface compatibility.
func (l *Log) Close() error {
	return nil
}
