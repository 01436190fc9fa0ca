// Package uid generates string identifiers for correlation ids, token ids,
// event ids and new identity records.
package uid

// StringID produces unique string identifiers.
type StringID interface {
	Generate() string
}
