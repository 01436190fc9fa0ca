// Package mail defines the contracts for sending email messages.
//
// Handlers and use cases work with the Mail interface and Message payload so
// they stay independent from the delivery mechanism. SMTP delivery is built on
// gopkg.in/gomail.v2; a log-only driver is available for local runs.
package mail
