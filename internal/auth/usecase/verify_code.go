package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
)

type VerifyCodeInput struct {
	Channel     entity.Channel
	Destination string `validate:"required"`
	Code        string `validate:"required"`
}

func (s *Usecase) VerifyCode(ctx context.Context, in VerifyCodeInput) error {
	ctx, span := s.startSpan(ctx, "VerifyCode")
	defer span.End()

	in.Destination = normalizeDestination(in.Channel, in.Destination)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	d, err := s.descriptor(in.Channel)
	if err != nil {
		return goerror.Wrap(err, "unsupported channel", goerror.CodeInvalidFormat)
	}

	ok, err := s.verify(ctx, d, in.Destination, in.Code)
	if err != nil {
		count(ctx, s.verifiedCounter, d.channel, "store_error")
		slog.ErrorContext(ctx, "failed to verify code on store", "channel", d.channel.String(), "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		count(ctx, s.verifiedCounter, d.channel, "rejected")
		slog.WarnContext(ctx, "verification code rejected", "channel", d.channel.String())
		return goerror.Wrap(entity.ErrInvalidCredential, "verification code is invalid or expired", goerror.CodeInvalidFormat)
	}

	count(ctx, s.verifiedCounter, d.channel, "accepted")

	return nil
}
