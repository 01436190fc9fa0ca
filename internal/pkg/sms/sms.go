package sms

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNoRecipient is returned when Message.To is empty.
	ErrNoRecipient = errors.New("sms: recipient is required")
	// ErrEmptyBody is returned when Message.Body is empty.
	ErrEmptyBody = errors.New("sms: message body is required")
)

// Message is a single short message.
type Message struct {
	// To is the destination phone number as accepted by the gateway.
	To string
	// Body is the text content.
	Body string
}

// Receipt is what the gateway reports after accepting a message.
type Receipt struct {
	// MessageID is the gateway-assigned identifier, if any.
	MessageID string
}

// Sender abstracts an SMS gateway.
type Sender interface {
	io.Closer
	// Send hands the message to the gateway. It does not retry.
	Send(ctx context.Context, msg Message) (Receipt, error)
}

func validate(msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if msg.Body == "" {
		return ErrEmptyBody
	}
	return nil
}
