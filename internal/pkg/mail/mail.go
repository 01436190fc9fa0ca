package mail

import (
	"context"
	"io"
)

// Message is one email. HTMLBody wins over TextBody when only one can be
// shown; when both are set the text part is sent as the alternative.
type Message struct {
	From     string // falls back to the driver default
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	TextBody string
	HTMLBody string
	Tag      string // sent as X-Tag for provider-side grouping
}

func (m Message) recipients() int {
	return len(m.To) + len(m.Cc) + len(m.Bcc)
}

// Mail sends email through one provider.
type Mail interface {
	io.Closer
	// Send hands msg to the provider once; it does not retry.
	Send(ctx context.Context, msg Message) error
}
