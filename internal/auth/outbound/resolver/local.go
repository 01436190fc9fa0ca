// Package resolver finds or creates the user behind a verified destination.
package resolver

import (
	"context"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
)

type userStore interface {
	FindOrCreateUser(ctx context.Context, candidate entity.User) (*entity.User, error)
}

// Local resolves users in-process against the user store.
type Local struct {
	store userStore
}

func NewLocal(store userStore) *Local {
	return &Local{store: store}
}

func (l *Local) FindOrCreate(ctx context.Context, in entity.ResolveUser) (*entity.User, error) {
	return l.store.FindOrCreateUser(ctx, entity.NewUser(in))
}
