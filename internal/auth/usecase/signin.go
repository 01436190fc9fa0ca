package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
)

type SignInInput struct {
	Channel     entity.Channel
	Destination string
	Code        string
}

type SignInOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
	Identity    *entity.Identity
}

func (s *Usecase) SignIn(ctx context.Context, in SignInInput) (*SignInOutput, error) {
	ctx, span := s.startSpan(ctx, "SignIn")
	defer span.End()

	identity, err := s.Authorize(ctx, AuthorizeInput(in))
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(jwt.Subject{
		ID:          identity.ID,
		Username:    identity.Username,
		Channel:     identity.Channel.String(),
		Destination: identity.Destination(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "identity_id", identity.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SignInOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.sessionTTL().Seconds()),
		Identity:    identity,
	}, nil
}
