package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
	ctxStore  = "store"
)

// RequireAuth verifies the identity-provider access token from the
// Authorization header and puts subject and role on the context.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
			}
			role, _ := claims["role"].(string)

			c.Set(ctxUserID, sub)
			c.Set(ctxRole, role)
			return next(c)
		}
	}
}

// RequireAdmin runs after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return next(c)
		}
	}
}

// RequireStoreOwner resolves the :storeID route param and refuses callers
// who do not own the store (admins pass). The loaded store is stashed on the
// context so handlers don't fetch it again.
func RequireStoreOwner(r *repo.GormRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			storeID, err := uuid.Parse(c.Param("storeID"))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid store id")
			}

			store, err := r.GetStore(c.Request().Context(), storeID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "store not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}

			if store.OwnerID != UserID(c) && Role(c) != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}

			c.Set(ctxStore, store)
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	if v, ok := c.Get(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func Role(c echo.Context) string {
	if v, ok := c.Get(ctxRole).(string); ok {
		return v
	}
	return ""
}

func Store(c echo.Context) *models.Store {
	if v, ok := c.Get(ctxStore).(*models.Store); ok {
		return v
	}
	return nil
}
