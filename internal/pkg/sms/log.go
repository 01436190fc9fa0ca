package sms

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
)

// Log is a dry-run driver: it logs the message instead of sending it.
type Log struct {
	seq atomic.Uint64
}

// NewLog returns a dry-run Sender.
func NewLog() *Log {
	return &Log{}
}

// Send logs the message and reports it as accepted.
func (l *Log) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := validate(msg); err != nil {
		return Receipt{}, err
	}

	id := "dry-run-" + strconv.FormatUint(l.seq.Add(1), 10)
	slog.InfoContext(ctx, "sms dry run", "to", msg.To, "message", msg.Body, "message_id", id)

	return Receipt{MessageID: id}, nil
}

// Close implements io.Closer for interface compatibility.
func (l *Log) Close() error {
	return nil
}
