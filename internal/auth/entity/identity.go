package entity

import (
	"strings"
	"time"
)

const defaultName = "user"

// User is a persisted account, keyed by the destination it signed up with.
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResolveUser is the find-or-create request for a user.
type ResolveUser struct {
	ID        string `json:"id"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	FullName  string `json:"fullName,omitempty"`
}

// NewUser builds the record created for a first sign-in. Missing names are
// derived from the destination: phone users become "user_<last4>", email
// users take the local part as username.
func NewUser(in ResolveUser) User {
	u := User{
		ID:        in.ID,
		Phone:     in.Phone,
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		FullName:  in.FullName,
	}

	var handle, last string
	switch {
	case in.Phone != "":
		last = LastDigits(in.Phone)
		handle = "user_" + last
	case in.Email != "":
		handle = LocalPart(in.Email)
		last = defaultName
	}

	if u.FirstName == "" {
		u.FirstName = defaultName
	}
	if u.LastName == "" {
		u.LastName = last
	}
	if u.FullName == "" {
		u.FullName = handle
	}
	if u.Username == "" {
		u.Username = handle
	}

	return u
}

// Identity is the normalized result of a successful sign-in.
type Identity struct {
	ID        string  `json:"id"`
	Channel   Channel `json:"channel"`
	Phone     string  `json:"phone,omitempty"`
	Email     string  `json:"email,omitempty"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	FullName  string  `json:"fullName,omitempty"`
	Avatar    string  `json:"avatar,omitempty"`
}

// LastDigits returns the last four characters of a phone number.
func LastDigits(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return phone[len(phone)-4:]
}

// LocalPart returns the part of an email address before '@'.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Destination is the address the identity signed in with.
func (i Identity) Destination() string {
	if i.Channel == ChannelEmail {
		return i.Email
	}
	return i.Phone
}
