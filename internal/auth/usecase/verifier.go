package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
)

// channelDescriptor binds a channel to its destination predicate and sender.
// The channel name doubles as the code store key prefix.
type channelDescriptor struct {
	channel  entity.Channel
	validate func(destination string) bool
	sender   codeSender
}

func (s *Usecase) descriptor(ch entity.Channel) (channelDescriptor, error) {
	d, ok := s.channels[ch]
	if !ok || d.sender == nil {
		return channelDescriptor{}, fmt.Errorf("%w: %q", entity.ErrUnknownChannel, ch)
	}
	return d, nil
}

// issue validates the destination, delivers a fresh code and only then stores
// it, replacing any earlier code for the same destination.
func (s *Usecase) issue(ctx context.Context, d channelDescriptor, destination string) (string, error) {
	if !d.validate(destination) {
		return "", entity.ErrInvalidDestination
	}

	code := s.generator.Generate(s.codeLength())

	delivery, err := d.sender.Send(ctx, destination, code)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrDeliveryFailed, err)
	}
	if delivery == nil || !delivery.Delivered {
		msg := ""
		if delivery != nil {
			msg = delivery.ProviderMessage
		}
		return "", fmt.Errorf("%w: provider rejected message: %s", entity.ErrDeliveryFailed, msg)
	}

	slog.InfoContext(ctx, "verification code delivered",
		"channel", d.channel.String(),
		"message_id", delivery.MessageID,
	)

	if err := s.store.Put(ctx, d.channel.String(), destination, code, s.codeTTL()); err != nil {
		return "", err
	}

	return code, nil
}

// verify consumes the live code for destination when it matches. A malformed
// destination can never hold a code and reads as a mismatch.
func (s *Usecase) verify(ctx context.Context, d channelDescriptor, destination, code string) (bool, error) {
	if !d.validate(destination) {
		return false, nil
	}

	return s.store.VerifyAndConsume(ctx, d.channel.String(), destination, code)
}
