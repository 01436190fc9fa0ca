package entity

import "errors"

var (
	// ErrInvalidDestination reports a phone number or email address that is malformed.
	ErrInvalidDestination = errors.New("invalid destination")
	// ErrDeliveryFailed reports that the provider did not accept the code.
	ErrDeliveryFailed = errors.New("verification code delivery failed")
	// ErrInvalidCredential reports a missing, wrong, expired or already used code.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrIdentityResolution reports that no identity could be found or created.
	ErrIdentityResolution = errors.New("identity resolution failed")
	// ErrUnknownChannel reports a channel other than sms or email.
	ErrUnknownChannel = errors.New("unknown channel")
)
