// Package messaging publishes domain events to a message broker.
//
// Business code depends on Publisher only; the broker (Kafka, NATS, NSQ,
// Google Pub/Sub, or a logging stand-in for local runs) is chosen by
// NewFromDriver from configuration.
package messaging
