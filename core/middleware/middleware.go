package middleware

import (
	"net/http"
	"strings"

	"meetsync-api/core/cache"
	"meetsync-api/core/constants"
	"meetsync-api/core/controller"
	"meetsync-api/core/errors"
	"meetsync-api/core/logger"
	"meetsync-api/core/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the Bearer token and stores its claims on the
// request context under constants.ContextTokenData
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
			}

			claims, err := utils.ParseToken(parts[1])
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:ParseToken", "error", err)
				code := errors.ErrUnauthorized
				if strings.Contains(err.Error(), jwt.ErrTokenExpired.Error()) {
					code = errors.ErrTokenExpired
				}
				return controller.NewErrorResponse(http.StatusUnauthorized, code, "invalid or expired token")
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrUnauthorized, "token scope is not valid for this endpoint")
			}

			if claims.ID != "" && m.cache.IsTokenBlacklisted(c.Request().Context(), claims.ID) {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrUnauthorized, "token has been revoked")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
