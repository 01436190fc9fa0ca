package event

import "time"

const UserSignedInDestination string = "auth.user_signed_in"

type UserSignedInMessage struct {
	EventID    string    `json:"event_id"`
	IdentityID string    `json:"identity_id"`
	Channel    string    `json:"channel"`
	Username   string    `json:"username"`
	SignedInAt time.Time `json:"signed_in_at"`
}
