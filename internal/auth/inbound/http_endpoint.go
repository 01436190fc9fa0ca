package inbound

import (
	"time"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/auth/usecase"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
	"github.com/shandysiswandi/gosignin/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for code issuance, verification and sign-in.
type HTTPEndpoint struct {
	uc uc
}

// IssueSMSCode sends a verification code to a phone number.
// @Summary Send SMS verification code
// @Description Generates a one-time code, texts it to the phone number and keeps it for five minutes.
// @Tags Auth, SMS
// @Accept json
// @Produce json
// @Param request body IssueSMSCodeRequest true "Phone number payload"
// @Success 200 {object} router.successResponse{data=IssueCodeResponse} "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid phone number"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /auth/sms [post]
func (h *HTTPEndpoint) IssueSMSCode(r *router.Request) (any, error) {
	var req IssueSMSCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.issue(r, entity.ChannelSMS, req.PhoneNumber)
}

// VerifySMSCode checks a code previously sent by SMS.
// @Summary Verify SMS code
// @Description Consumes the code issued to the phone number. A code verifies at most once.
// @Tags Auth, SMS
// @Produce json
// @Param phoneNumber query string true "Phone number"
// @Param code query string true "Verification code"
// @Success 200 {object} router.successResponse "Code verified"
// @Failure 400 {object} router.errorResponse "Missing parameters or invalid code"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /auth/sms [get]
func (h *HTTPEndpoint) VerifySMSCode(r *router.Request) (any, error) {
	return h.verify(r, entity.ChannelSMS, r.GetQuery("phoneNumber"))
}

// IssueEmailCode sends a verification code to an email address.
// @Summary Send email verification code
// @Description Generates a one-time code, mails it to the address and keeps it for five minutes.
// @Tags Auth, Email
// @Accept json
// @Produce json
// @Param request body IssueEmailCodeRequest true "Email payload"
// @Success 200 {object} router.successResponse{data=IssueCodeResponse} "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid email address"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /auth/email [post]
func (h *HTTPEndpoint) IssueEmailCode(r *router.Request) (any, error) {
	var req IssueEmailCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.issue(r, entity.ChannelEmail, req.Email)
}

// VerifyEmailCode checks a code previously sent by email.
// @Summary Verify email code
// @Tags Auth, Email
// @Produce json
// @Param email query string true "Email address"
// @Param code query string true "Verification code"
// @Success 200 {object} router.successResponse "Code verified"
// @Failure 400 {object} router.errorResponse "Missing parameters or invalid code"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /auth/email [get]
func (h *HTTPEndpoint) VerifyEmailCode(r *router.Request) (any, error) {
	return h.verify(r, entity.ChannelEmail, r.GetQuery("email"))
}

func (h *HTTPEndpoint) issue(r *router.Request, ch entity.Channel, destination string) (any, error) {
	resp, err := h.uc.IssueCode(r.Context(), usecase.IssueCodeInput{
		Channel:     ch,
		Destination: destination,
	})
	if err != nil {
		return nil, err
	}

	return IssueCodeResponse{
		Channel:          resp.Channel.String(),
		Destination:      resp.Destination,
		ExpiresInSeconds: resp.ExpiresInSeconds,
	}, nil
}

func (h *HTTPEndpoint) verify(r *router.Request, ch entity.Channel, destination string) (any, error) {
	if err := h.uc.VerifyCode(r.Context(), usecase.VerifyCodeInput{
		Channel:     ch,
		Destination: destination,
		Code:        r.GetRawQuery("code"),
	}); err != nil {
		return nil, err
	}

	return VerifyCodeResponse{}, nil
}

// ResolveUser finds the user for a verified destination or creates it.
// @Summary Find or create user
// @Description Returns the user with the given id. A new user gets default names derived from the phone number or email.
// @Tags Auth, User
// @Accept json
// @Produce json
// @Param request body ResolveUserRequest true "User payload"
// @Success 200 {object} router.successResponse{data=entity.User} "User record"
// @Failure 400 {object} router.errorResponse "Missing fields"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /auth/user [post]
func (h *HTTPEndpoint) ResolveUser(r *router.Request) (any, error) {
	var req ResolveUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := h.uc.ResolveUser(r.Context(), usecase.ResolveUserInput(req))
	if err != nil {
		return nil, err
	}

	return ResolveUserResponse{User: user}, nil
}

// SignIn exchanges a verified code for an access token.
// @Summary Sign in with a verification code
// @Description Consumes the code, resolves the identity and returns a bearer token.
// @Tags Auth, Session
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credential payload"
// @Success 200 {object} router.successResponse{data=SignInResponse} "Signed in"
// @Failure 400 {object} router.errorResponse "Invalid request body or channel"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /auth/signin [post]
func (h *HTTPEndpoint) SignIn(r *router.Request) (any, error) {
	var req SignInRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	ch := entity.ParseChannel(req.Channel)
	if !ch.Valid() {
		return nil, goerror.NewInvalidInput(nil, "channel", "channel must be one of sms, email")
	}

	resp, err := h.uc.SignIn(r.Context(), usecase.SignInInput{
		Channel:     ch,
		Destination: req.Destination,
		Code:        req.Code,
	})
	if err != nil {
		return nil, err
	}

	return SignInResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
		Identity:    resp.Identity,
	}, nil
}

// Session returns the claims of the bearer token.
// @Summary Current session
// @Tags Auth, Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /auth/session [get]
func (h *HTTPEndpoint) Session(r *router.Request) (any, error) {
	resp, err := h.uc.Session(r.Context())
	if err != nil {
		return nil, err
	}

	out := SessionResponse{
		IdentityID:  resp.IdentityID,
		Username:    resp.Username,
		Channel:     resp.Channel,
		Destination: resp.Destination,
	}
	if !resp.ExpiresAt.IsZero() {
		out.ExpiresAt = resp.ExpiresAt.UTC().Format(time.RFC3339)
	}

	return out, nil
}
