package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const adminSubjectKey = "admin_subject"

// adminAuth accepts HS256 bearer tokens signed with secret that carry a subject.
func adminAuth(secret []byte) echo.MiddlewareFunc {
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided.")
			}

			claims := &jwt.RegisteredClaims{}
			if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, keyFunc); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token has no subject.")
			}

			c.Set(adminSubjectKey, claims.Subject)
			return next(c)
		}
	}
}
