package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/covidtrack/internal/pkg/constants"
	"github.com/ougirez/covidtrack/internal/pkg/utils"
)

func signedToken(t *testing.T, secret string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.AuthToken{Secret: secret}).
		SignedString([]byte(viper.GetString(constants.ViperSigningKey)))
	require.NoError(t, err)

	return token
}

func adminRequest(cookie string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/regions/seed", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: constants.CookieKeySecretToken, Value: cookie})
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAdminMiddleware(t *testing.T) {
	viper.Set(constants.ViperSigningKey, "test-signing-key")
	viper.Set(constants.ViperSecretKey, "s3cret")
	defer viper.Reset()

	svc := &APIService{router: echo.New()}
	var called bool
	handler := svc.AdminMiddleware(func(echo.Context) error {
		called = true
		return nil
	})

	t.Run("valid token", func(t *testing.T) {
		called = false
		err := handler(adminRequest(signedToken(t, "s3cret")))
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("wrong secret", func(t *testing.T) {
		called = false
		err := handler(adminRequest(signedToken(t, "guess")))
		assert.ErrorIs(t, err, constants.ErrUnauthorized)
		assert.False(t, called)
	})

	t.Run("missing cookie", func(t *testing.T) {
		called = false
		err := handler(adminRequest(""))
		assert.ErrorIs(t, err, constants.ErrUnauthorized)
		assert.False(t, called)
	})

	t.Run("garbage token", func(t *testing.T) {
		called = false
		err := handler(adminRequest("not-a-jwt"))
		assert.Error(t, err)
		assert.False(t, called)
	})
}
