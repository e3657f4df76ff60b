package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/revit/marketplace/internal/api/middleware"
	"github.com/revit/marketplace/internal/core/domain"
)

// actor returns the principal injected by the auth middleware. Anonymous
// requests yield the zero principal and the services decide what that means.
func actor(c echo.Context) domain.Principal {
	return middleware.PrincipalFrom(c)
}

// bindAndValidate decodes the request body into req and runs the struct
// validator registered on the echo instance.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.ValidationError("invalid payload")
	}
	return c.Validate(req)
}
