package entity

// Delivery is the provider outcome of sending one verification code.
type Delivery struct {
	Delivered       bool
	ProviderMessage string
	MessageID       string
}
