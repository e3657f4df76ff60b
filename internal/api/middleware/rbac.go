package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC restricts a route to the given user types. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allowed[PrincipalFrom(c).Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "not allowed to perform this action",
					"code":  "unauthorized",
				})
			}
			return next(c)
		}
	}
}
