// Package otp generates the numeric one-time codes sent over SMS and email.
//
// Codes are bearer secrets, so digits are drawn from crypto/rand. Business
// code depends on the Generator interface so tests can pin the code value.
package otp
