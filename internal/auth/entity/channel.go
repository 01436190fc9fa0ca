package entity

import "strings"

// Channel is the medium a verification code is delivered over.
type Channel string

const (
	ChannelUnknown Channel = ""
	ChannelSMS     Channel = "sms"
	ChannelEmail   Channel = "email"
)

// ParseChannel accepts a channel name case-insensitively.
func ParseChannel(s string) Channel {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelSMS:
		return ChannelSMS
	case ChannelEmail:
		return ChannelEmail
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	return string(c)
}

// Valid reports whether c is a supported channel.
func (c Channel) Valid() bool {
	return c == ChannelSMS || c == ChannelEmail
}
