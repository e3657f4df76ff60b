package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/revit/marketplace/internal/core/domain"
)

const principalKey = "principal"

var errNoToken = errors.New("missing authorization header")

// Auth validates the bearer JWT and stores the caller's domain.Principal in
// the echo context. Requests without a valid token are rejected with 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := parseToken(c.Request().Header.Get("Authorization"), jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			setPrincipal(c, p)
			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth when a token is present and lets anonymous
// requests through with an empty principal.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := parseToken(c.Request().Header.Get("Authorization"), jwtSecret)
			switch {
			case errors.Is(err, errNoToken):
			case err != nil:
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			default:
				setPrincipal(c, p)
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by Auth, or the zero principal.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, _ := c.Get(principalKey).(domain.Principal)
	return p
}

func setPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
	c.Set("user_id", p.UserID)
	c.Set("role", p.Role)
}

func parseToken(authHeader, jwtSecret string) (domain.Principal, error) {
	if authHeader == "" {
		return domain.Principal{}, errNoToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Principal{}, errors.New("invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Principal{}, errors.New("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || role == "" {
		return domain.Principal{}, errors.New("token missing user identity")
	}
	return domain.Principal{UserID: userID, Email: email, Role: role}, nil
}
