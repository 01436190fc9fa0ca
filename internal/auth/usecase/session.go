package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
)

type SessionOutput struct {
	IdentityID  string
	Username    string
	Channel     string
	Destination string
	ExpiresAt   time.Time
}

// Session describes the bearer token attached to ctx.
func (s *Usecase) Session(ctx context.Context) (*SessionOutput, error) {
	_, span := s.startSpan(ctx, "Session")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	out := &SessionOutput{
		IdentityID:  clm.Subject,
		Username:    clm.Username,
		Channel:     clm.Channel,
		Destination: clm.Destination,
	}
	if clm.ExpiresAt != nil {
		out.ExpiresAt = clm.ExpiresAt.Time
	}

	return out, nil
}
