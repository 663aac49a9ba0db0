package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
)

const actorContextKey = "actor"

// BearerAuth validates the Authorization header and stores the authenticated
// actor in the echo context. Tokens carry the actor id in "sub" and the role
// in "role"; only HMAC-signed tokens are accepted.
func BearerAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			actor, err := actorFromToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromToken(tokenString string, secret []byte) (services.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return services.Actor{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return services.Actor{}, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return services.Actor{}, fmt.Errorf("subject claim: %w", err)
	}
	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return services.Actor{}, fmt.Errorf("subject claim: %w", err)
	}

	roleClaim, _ := claims["role"].(string)
	role, err := services.RoleFromString(roleClaim)
	if err != nil {
		return services.Actor{}, fmt.Errorf("role claim: %w", err)
	}

	return services.NewActor(id, role)
}

func actorFrom(c echo.Context) (services.Actor, error) {
	actor, ok := c.Get(actorContextKey).(services.Actor)
	if !ok {
		return services.Actor{}, fmt.Errorf("no actor in request context")
	}
	return actor, nil
}
