package http

import (
	"net/http"

	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Caller identity headers. Authentication itself is terminated upstream;
// the gateway forwards the verified identity in these headers.
const (
	HeaderCallerID   = "X-Caller-Id"
	HeaderCallerRole = "X-Caller-Role"
	HeaderCallerName = "X-Caller-Name"
)

const callerContextKey = "caller"

// ResolveActor is the echo middleware that builds the kernel.Actor for the
// request from the identity headers. Requests with a missing or malformed
// identity are rejected with 401 before reaching a handler.
func ResolveActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderCallerID))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing caller id")
		}

		name := ctx.Request().Header.Get(HeaderCallerName)
		if name == "" {
			name = "unknown"
		}

		actor, err := kernel.NewActor(kernel.Role(ctx.Request().Header.Get(HeaderCallerRole)), id, name)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid caller role")
		}

		ctx.Set(callerContextKey, actor)
		return next(ctx)
	}
}

// callerFrom returns the actor resolved by ResolveActor.
func callerFrom(ctx echo.Context) (kernel.Actor, error) {
	actor, ok := ctx.Get(callerContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "caller identity not resolved")
	}
	return actor, nil
}
