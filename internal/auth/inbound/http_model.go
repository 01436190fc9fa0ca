package inbound

import (
	"github.com/shandysiswandi/gosignin/internal/auth/entity"
)

type IssueSMSCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type IssueEmailCodeRequest struct {
	Email string `json:"email"`
}

type IssueCodeResponse struct {
	Channel          string `json:"channel"`
	Destination      string `json:"destination"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

func (IssueCodeResponse) Message() string {
	return "verification code sent"
}

type VerifyCodeResponse struct{}

func (VerifyCodeResponse) Message() string {
	return "verification code verified"
}

func (VerifyCodeResponse) Data() any { return nil }

type ResolveUserRequest struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

type ResolveUserResponse struct {
	User *entity.User
}

func (ResolveUserResponse) Message() string { return "user resolved" }

func (r ResolveUserResponse) Data() any { return r.User }

type SignInRequest struct {
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
	Code        string `json:"code"`
}

type SignInResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int              `json:"expires_in"`
	Identity    *entity.Identity `json:"identity"`
}

func (SignInResponse) Message() string { return "signed in" }

type SessionResponse struct {
	IdentityID  string `json:"identity_id"`
	Username    string `json:"username"`
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}
