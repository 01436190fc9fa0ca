package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
)

type ResolveUserInput struct {
	ID        string `validate:"required"`
	Phone     string `validate:"required_without=Email"`
	Email     string `validate:"required_without=Phone"`
	Username  string
	FirstName string
	LastName  string
	FullName  string
}

// ResolveUser returns the user with in.ID, creating it with derived defaults
// on first sign-in. Existing users get their settings row ensured.
func (s *Usecase) ResolveUser(ctx context.Context, in ResolveUserInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "ResolveUser")
	defer span.End()

	in.ID = strings.TrimSpace(in.ID)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.FindOrCreateUser(ctx, entity.NewUser(entity.ResolveUser(in)))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo find or create user", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
