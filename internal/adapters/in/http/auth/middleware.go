package auth

import (
	"net/http"
	"strings"

	"orders/internal/core/domain/model/actor"

	"github.com/labstack/echo/v4"
)

const actorKey = "orders.actor"

type errorBody struct {
	Message string `json:"message"`
}

// ExtractToken reads the bearer token from the Authorization header.
func ExtractToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Middleware rejects requests without a valid token and stores the caller's
// actor on the echo context.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ExtractToken(c.Request())
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Message: "not authorized, no token"})
			}

			a, err := tokens.Verify(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{Message: "not authorized, " + err.Error()})
			}

			c.Set(actorKey, a)
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by Middleware.
func ActorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(actorKey).(actor.Actor)
	return a, ok
}
