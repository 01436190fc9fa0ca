package otp

import (
	"crypto/rand"
	"strings"
)

// DefaultLength is the code length used when callers pass a non-positive length.
const DefaultLength = 6

// Generator produces fixed-length numeric codes.
type Generator interface {
	Generate(length int) string
}

// Numeric draws each digit uniformly from 0-9, leading zeros included.
type Numeric struct{}

// NewNumeric returns a crypto/rand backed Generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a code of length digits.
//
// Bytes >= 250 are rejected so every digit keeps a 1/10 probability.
func (*Numeric) Generate(length int) string {
	if length <= 0 {
		length = DefaultLength
	}

	var sb strings.Builder
	sb.Grow(length)

	buf := make([]byte, length*2)
	for sb.Len() < length {
		// crypto/rand.Read never returns an error since Go 1.24.
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			sb.WriteByte('0' + b%10)
			if sb.Len() == length {
				break
			}
		}
	}

	return sb.String()
}
