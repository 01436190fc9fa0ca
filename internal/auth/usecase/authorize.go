package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
)

type AuthorizeInput struct {
	Channel     entity.Channel
	Destination string
	Code        string
}

// Authorize turns a (destination, code) credential into an identity: the code
// is consumed first, then the identity is resolved exactly once. A spent code
// is not restored when resolution fails.
func (s *Usecase) Authorize(ctx context.Context, in AuthorizeInput) (*entity.Identity, error) {
	ctx, span := s.startSpan(ctx, "Authorize")
	defer span.End()

	in.Destination = normalizeDestination(in.Channel, in.Destination)

	if in.Destination == "" || in.Code == "" {
		return nil, goerror.Wrap(entity.ErrInvalidCredential, "missing destination or code", goerror.CodeUnauthorized)
	}

	d, err := s.descriptor(in.Channel)
	if err != nil {
		return nil, goerror.Wrap(err, "unsupported channel", goerror.CodeInvalidFormat)
	}

	ok, err := s.verify(ctx, d, in.Destination, in.Code)
	if err != nil {
		count(ctx, s.verifiedCounter, d.channel, "store_error")
		slog.ErrorContext(ctx, "failed to verify credential on store", "channel", d.channel.String(), "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		count(ctx, s.verifiedCounter, d.channel, "rejected")
		slog.WarnContext(ctx, "credential rejected", "channel", d.channel.String())
		return nil, goerror.Wrap(entity.ErrInvalidCredential, "invalid credentials", goerror.CodeUnauthorized)
	}
	count(ctx, s.verifiedCounter, d.channel, "accepted")

	req := entity.ResolveUser{ID: in.Destination}
	if d.channel == entity.ChannelEmail {
		req.Email = in.Destination
	} else {
		req.Phone = in.Destination
	}

	user, err := s.resolver.FindOrCreate(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve identity", "channel", d.channel.String(), "error", err)
		return nil, goerror.NewServer(fmt.Errorf("%w: %w", entity.ErrIdentityResolution, err))
	}
	if user == nil {
		slog.ErrorContext(ctx, "identity resolver returned no user", "channel", d.channel.String())
		return nil, goerror.NewServer(entity.ErrIdentityResolution)
	}

	identity := normalizeIdentity(d.channel, in.Destination, user)

	s.publishSignedIn(ctx, identity)

	return identity, nil
}

func normalizeIdentity(ch entity.Channel, destination string, user *entity.User) *entity.Identity {
	id := &entity.Identity{
		ID:        user.ID,
		Channel:   ch,
		Phone:     user.Phone,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName,
		Avatar:    user.Avatar,
	}

	switch ch {
	case entity.ChannelEmail:
		id.Email = lo.CoalesceOrEmpty(user.Email, destination)
		id.Username = lo.CoalesceOrEmpty(user.Username, entity.LocalPart(destination))
	case entity.ChannelSMS:
		id.Phone = lo.CoalesceOrEmpty(user.Phone, destination)
		id.Username = lo.CoalesceOrEmpty(user.Username, "user_"+entity.LastDigits(destination))
	}

	return id
}

// publishSignedIn is best effort; a broker failure never fails the sign-in.
func (s *Usecase) publishSignedIn(ctx context.Context, identity *entity.Identity) {
	if s.repoMessaging == nil {
		return
	}

	ev := UserSignedInEvent{
		IdentityID: identity.ID,
		Channel:    identity.Channel,
		Username:   identity.Username,
		SignedInAt: s.clock.Now(),
	}
	if s.uuid != nil {
		ev.EventID = s.uuid.Generate()
	}

	if err := s.repoMessaging.PublishUserSignedIn(ctx, ev); err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "failed to publish user signed in", "identity_id", identity.ID, "error", err)
	}
}
