package context

import (
	"context"

	"bayanihan/internal/core/id"
)

// ActorContext identifies the person performing the request — the staff
// member whose id is recorded on distributions and ledger entries.
// There is no authentication layer; the caller self-identifies.
type ActorContext struct {
	ActorID     id.ID
	DisplayName string
}

type actorContextKey struct{}

// WithActor adds ActorContext to context.
func WithActor(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns ActorContext from context, or nil for anonymous requests.
func GetActor(ctx context.Context) *ActorContext {
	if v, ok := ctx.Value(actorContextKey{}).(*ActorContext); ok {
		return v
	}
	return nil
}

// GetActorID returns the acting user's id, or nil when the request is
// anonymous. Ledger entries store the nil as a NULL actor.
func GetActorID(ctx context.Context) *id.ID {
	if a := GetActor(ctx); a != nil && !id.IsNil(a.ActorID) {
		actorID := a.ActorID
		return &actorID
	}
	return nil
}
