package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverSNS selects the AWS SNS backend.
	DriverSNS = "sns"
	// DriverLog selects the dry-run backend.
	DriverLog = "log"
)

// ErrUnknownDriver indicates an unsupported sms driver.
var ErrUnknownDriver = errors.New("sms: unknown driver")

// FactoryOptions groups config for supported sms backends.
type FactoryOptions struct {
	// SNS provides configuration for the SNS driver.
	SNS SNSConfig
}

// NewFromDriver constructs a Sender by driver name, ignoring case. An empty
// name selects the dry-run backend.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSNS:
		return NewSNS(ctx, opts.SNS)
	case DriverLog, "":
		return NewLog(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
