package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
)

type IssueCodeInput struct {
	Channel     entity.Channel
	Destination string
}

type IssueCodeOutput struct {
	Channel          entity.Channel
	Destination      string
	ExpiresInSeconds int
}

func (s *Usecase) IssueCode(ctx context.Context, in IssueCodeInput) (*IssueCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "IssueCode")
	defer span.End()

	in.Destination = normalizeDestination(in.Channel, in.Destination)

	d, err := s.descriptor(in.Channel)
	if err != nil {
		slog.WarnContext(ctx, "issue code on unsupported channel", "channel", in.Channel.String())
		return nil, goerror.Wrap(err, "unsupported channel", goerror.CodeInvalidFormat)
	}

	_, err = s.issue(ctx, d, in.Destination)
	switch {
	case err == nil:
		count(ctx, s.issuedCounter, d.channel, "sent")
	case errors.Is(err, entity.ErrInvalidDestination):
		count(ctx, s.issuedCounter, d.channel, "invalid_destination")
		return nil, goerror.Wrap(err, invalidDestinationMessage(d.channel), goerror.CodeInvalidFormat)
	case errors.Is(err, entity.ErrDeliveryFailed):
		count(ctx, s.issuedCounter, d.channel, "delivery_failed")
		slog.ErrorContext(ctx, "failed to deliver verification code", "channel", d.channel.String(), "error", err)
		return nil, goerror.Wrap(err, "failed to send verification code, please try again later", goerror.CodeInternal)
	default:
		count(ctx, s.issuedCounter, d.channel, "store_error")
		slog.ErrorContext(ctx, "failed to store verification code", "channel", d.channel.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	return &IssueCodeOutput{
		Channel:          d.channel,
		Destination:      in.Destination,
		ExpiresInSeconds: int(s.codeTTL().Seconds()),
	}, nil
}

// normalizeDestination trims the destination; email addresses are also
// lowercased so one mailbox maps to one code store key.
func normalizeDestination(ch entity.Channel, destination string) string {
	destination = strings.TrimSpace(destination)
	if ch == entity.ChannelEmail {
		destination = strings.ToLower(destination)
	}
	return destination
}

func invalidDestinationMessage(ch entity.Channel) string {
	if ch == entity.ChannelEmail {
		return "please enter a valid email address"
	}
	return "please enter a valid phone number"
}
