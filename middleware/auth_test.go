package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"heaven-palace/models"
	"heaven-palace/services"
)

type fakeIdentifier map[string]*services.Identity

func (f fakeIdentifier) Identify(token string) (*services.Identity, error) {
	if who, ok := f[token]; ok {
		return who, nil
	}
	return nil, errors.New("invalid token")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ids := fakeIdentifier{
		"guest-token": {UserID: "u1", Role: models.RoleGuest},
		"admin-token": {UserID: "a1", Role: models.RoleAdmin},
	}
	r := gin.New()
	r.Use(Identity(ids))
	r.GET("/open", func(c *gin.Context) {
		if who := CurrentIdentity(c); who != nil {
			c.String(http.StatusOK, who.UserID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/me", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentity_Optional(t *testing.T) {
	r := newRouter()

	assert.Equal(t, "anonymous", do(r, "/open", "").Body.String())
	assert.Equal(t, "anonymous", do(r, "/open", "forged").Body.String())
	assert.Equal(t, "u1", do(r, "/open", "guest-token").Body.String())
}

func TestRequireAuth(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "forged").Code)
	assert.Equal(t, http.StatusOK, do(r, "/me", "guest-token").Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "guest-token").Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", "admin-token").Code)
}
