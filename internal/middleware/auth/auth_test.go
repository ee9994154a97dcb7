package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	mw := RequireAuth(testSecret)

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  "user_1",
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := mw(func(c echo.Context) error {
			require.Equal(t, "user_1", UserID(c))
			require.Equal(t, "admin", Role(c))
			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	reject := func(t *testing.T, header string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		err := mw(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	}

	t.Run("missing header", func(t *testing.T) { reject(t, "") })
	t.Run("not bearer", func(t *testing.T) { reject(t, "Basic abc") })
	t.Run("garbage token", func(t *testing.T) { reject(t, "Bearer not.a.jwt") })

	t.Run("wrong key", func(t *testing.T) {
		token := signToken(t, []byte("other-secret"), jwt.MapClaims{"sub": "user_1"})
		reject(t, "Bearer "+token)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user_1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		reject(t, "Bearer "+token)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"role": "user"})
		reject(t, "Bearer "+token)
	})
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	mw := RequireAdmin()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("role", "user")
	err := mw(okHandler)(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set("role", "admin")
	require.NoError(t, mw(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireStoreOwner(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	r := repo.New(db)

	store := &models.Store{ID: uuid.New(), Name: "Books", Slug: "books", OwnerID: "owner_1"}
	require.NoError(t, db.Create(store).Error)

	e := echo.New()
	mw := RequireStoreOwner(r)

	ctx := func(storeID, userID, role string) (echo.Context, *httptest.ResponseRecorder) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.SetParamNames("storeID")
		c.SetParamValues(storeID)
		c.Set("userID", userID)
		c.Set("role", role)
		return c, rec
	}

	t.Run("owner passes and store is stashed", func(t *testing.T) {
		c, rec := ctx(store.ID.String(), "owner_1", "user")
		err := mw(func(c echo.Context) error {
			got := Store(c)
			require.NotNil(t, got)
			require.Equal(t, store.ID, got.ID)
			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		c, rec := ctx(store.ID.String(), "someone_else", "admin")
		require.NoError(t, mw(okHandler)(c))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		c, _ := ctx(store.ID.String(), "someone_else", "user")
		err := mw(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("unknown store", func(t *testing.T) {
		c, _ := ctx(uuid.NewString(), "owner_1", "user")
		err := mw(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusNotFound, he.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		c, _ := ctx("not-a-uuid", "owner_1", "user")
		err := mw(okHandler)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusBadRequest, he.Code)
	})
}
