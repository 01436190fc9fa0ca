package messaging

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"
)

// Log is a publisher that only writes the message to the structured log.
// It backs local runs where no broker is available.
type Log struct {
	seq atomic.Uint64
}

// NewLog returns a logging publisher.
func NewLog() *Log {
	return &Log{}
}

// Publish logs the message and returns a sequential message id.
func (l *Log) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}

	id := "log-" + strconv.FormatUint(l.seq.Add(1), 10)
	slog.InfoContext(ctx, "message published to log driver",
		"destination", destination,
		"message_id", id,
		"attributes", attributes(msg),
		"body", string(msg.Body),
	)

	return PublishResult{MessageID: id, Topic: destination, Timestamp: time.Now()}, nil
}

// Close is a no-op.
func (*Log) Close() error { return nil }
