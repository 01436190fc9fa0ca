package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrClosed is returned when publishing on a closed client.
var ErrClosed = errors.New("messaging: client is closed")

// Messaging is a broker-backed publisher that owns a connection.
type Messaging interface {
	io.Closer

	Publisher
}

// Publisher publishes messages to a destination (topic/subject).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning.
	Key []byte

	// Headers support arbitrary binary values and duplicate keys.
	Headers []Header

	// Attributes is a convenience for brokers that model string attributes (Pub/Sub).
	Attributes map[string]string

	// OrderingKey is used by Google Pub/Sub.
	OrderingKey string
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID, when the broker returns one.
	MessageID string
	// Topic is the destination the message was written to.
	Topic string
	// Timestamp is when the message was handed to the broker.
	Timestamp time.Time
}

// attributes flattens headers into string attributes, letting explicit
// attributes win.
func attributes(msg OutgoingMessage) map[string]string {
	if len(msg.Headers) == 0 && len(msg.Attributes) == 0 {
		return nil
	}

	out := make(map[string]string, len(msg.Headers)+len(msg.Attributes))
	for _, h := range msg.Headers {
		if h.Key != "" {
			out[h.Key] = string(h.Value)
		}
	}
	for k, v := range msg.Attributes {
		out[k] = v
	}
	return out
}
