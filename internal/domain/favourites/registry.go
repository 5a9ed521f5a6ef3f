package favourites

import (
	"context"

	"swipe-go/internal/domain/identity"
)

// Store persists one kind of favourite. Add must return ErrAlreadyFavourite
// when the pair exists.
type Store[T any] interface {
	TargetExists(ctx context.Context, targetID int64) (bool, error)
	Add(ctx context.Context, clientID, targetID int64) error
	Remove(ctx context.Context, clientID, targetID int64) (bool, error)
	List(ctx context.Context, clientID int64) ([]T, error)
}

// Registry is the per-client bookmark set for one target kind.
type Registry[T any] struct {
	store Store[T]
}

func NewRegistry[T any](store Store[T]) *Registry[T] {
	return &Registry[T]{store: store}
}

func (r *Registry[T]) Add(ctx context.Context, actor identity.Principal, targetID int64) error {
	if actor.ClientID == nil {
		return ErrNoClientProfile
	}
	if err := r.requireTarget(ctx, targetID); err != nil {
		return err
	}
	return r.store.Add(ctx, *actor.ClientID, targetID)
}

func (r *Registry[T]) Remove(ctx context.Context, actor identity.Principal, targetID int64) error {
	if actor.ClientID == nil {
		return ErrNoClientProfile
	}
	if err := r.requireTarget(ctx, targetID); err != nil {
		return err
	}
	removed, err := r.store.Remove(ctx, *actor.ClientID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrFavouriteNotFound
	}
	return nil
}

// List returns every favourited target regardless of its moderation or
// availability.
func (r *Registry[T]) List(ctx context.Context, actor identity.Principal) ([]T, error) {
	if actor.ClientID == nil {
		return nil, ErrNoClientProfile
	}
	return r.store.List(ctx, *actor.ClientID)
}

func (r *Registry[T]) requireTarget(ctx context.Context, targetID int64) error {
	exists, err := r.store.TargetExists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}
	return nil
}
