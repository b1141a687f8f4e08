package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "bayanihan/internal/core/context"
	"bayanihan/internal/core/id"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
)

// Actor middleware reads the self-identified acting user from request
// headers into context. There is no authentication: the id is trusted as
// given and recorded on distributions and ledger entries. Requests without
// the header proceed as anonymous.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderActorID)
		if raw == "" {
			c.Next()
			return
		}

		actorID, err := id.Parse(raw)
		if err != nil {
			// Malformed id degrades to anonymous rather than failing the request.
			c.Next()
			return
		}

		actor := &appctx.ActorContext{
			ActorID:     actorID,
			DisplayName: c.GetHeader(HeaderActorName),
		}

		ctx := appctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Set("actor_id", actorID.String())

		c.Next()
	}
}
