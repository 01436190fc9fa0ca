// Package sms defines the contract for sending short text messages.
//
// Use cases depend on the Sender interface and a provider-agnostic Message;
// the concrete gateway (AWS SNS, or a log-only driver for local runs) is picked
// by driver name through NewFromDriver.
package sms
