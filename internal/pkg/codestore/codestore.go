package codestore

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when no live record exists for the key.
	ErrNotFound = errors.New("codestore: record not found")

	// ErrUnavailable wraps every failure of the underlying backend.
	ErrUnavailable = errors.New("codestore: store unavailable")
)

// Store is the capability set used by the verification flow.
type Store interface {
	// Put replaces any record for (channel, identity) and resets its TTL.
	// A non-positive ttl removes the previous record and stores nothing.
	Put(ctx context.Context, channel, identity, code string, ttl time.Duration) error
	// Get returns the live code or ErrNotFound.
	Get(ctx context.Context, channel, identity string) (string, error)
	// Delete removes the record; deleting a missing record is not an error.
	Delete(ctx context.Context, channel, identity string) error
	// VerifyAndConsume reports whether code equals the live record and, if so,
	// deletes it in the same atomic step.
	VerifyAndConsume(ctx context.Context, channel, identity, code string) (bool, error)
}

// Key builds the storage key for a channel-scoped identity.
func Key(channel, identity string) string {
	return channel + ":" + identity
}
