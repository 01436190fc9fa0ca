// Package config reads service settings from a YAML file with environment
// overrides.
package config

import (
	"io"
	"time"
)

// Config is the read-only view of service settings used at wiring time.
//
// Missing keys read as the zero value; callers apply their own defaults.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetUint64(key string) uint64
	GetFloat64(key string) float64

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer number of minutes.
	GetMinute(key string) time.Duration

	// GetArray splits a comma separated value, trimming parts and dropping
	// blanks. An empty value yields nil.
	GetArray(key string) []string
}
