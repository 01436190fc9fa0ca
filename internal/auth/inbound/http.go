package inbound

import (
	"context"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/auth/usecase"
	"github.com/shandysiswandi/gosignin/internal/pkg/router"
)

type uc interface {
	IssueCode(ctx context.Context, in usecase.IssueCodeInput) (*usecase.IssueCodeOutput, error)
	VerifyCode(ctx context.Context, in usecase.VerifyCodeInput) error

	ResolveUser(ctx context.Context, in usecase.ResolveUserInput) (*entity.User, error)

	SignIn(ctx context.Context, in usecase.SignInInput) (*usecase.SignInOutput, error)
	Session(ctx context.Context) (*usecase.SessionOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Verification codes
	r.POST("/auth/sms", end.IssueSMSCode)
	r.GET("/auth/sms", end.VerifySMSCode)
	r.POST("/auth/email", end.IssueEmailCode)
	r.GET("/auth/email", end.VerifyEmailCode)

	// Identity
	r.POST("/auth/user", end.ResolveUser)

	// Session
	r.POST("/auth/signin", end.SignIn)
	r.GET("/auth/session", end.Session) // need authenticated
}
