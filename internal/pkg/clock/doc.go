// Package clock provides a tiny time abstraction.
//
// Code that compares against "now" (code expiry, token lifetimes) depends on
// Clocker so tests can move time forward with a Manual clock instead of
// sleeping.
package clock
