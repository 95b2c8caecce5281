package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-manager-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(a *Auth) *gin.Engine {
	r := gin.New()
	r.GET("/me", a.Required(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "username": GetUsername(c), "admin": IsAdmin(c)})
	})
	r.GET("/admin", a.Required(), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_TokenRoundTrip(t *testing.T) {
	a := NewAuth("secret", time.Hour)
	token, err := a.GenerateToken(&models.User{ID: "u1", Username: "alice", IsAdmin: true})
	require.NoError(t, err)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)

	_, err = NewAuth("other", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestAuth_ExpiredToken(t *testing.T) {
	a := NewAuth("secret", -time.Minute)
	token, err := a.GenerateToken(&models.User{ID: "u1"})
	require.NoError(t, err)
	_, err = a.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRequired(t *testing.T) {
	a := NewAuth("secret", time.Hour)
	r := protectedRouter(a)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "garbage").Code)

	token, _ := a.GenerateToken(&models.User{ID: "u1", Username: "alice"})
	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","username":"alice","admin":false}`, w.Body.String())
}

func TestAdminRequired(t *testing.T) {
	a := NewAuth("secret", time.Hour)
	r := protectedRouter(a)

	user, _ := a.GenerateToken(&models.User{ID: "u1"})
	admin, _ := a.GenerateToken(&models.User{ID: "u2", IsAdmin: true})

	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", user).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", admin).Code)
}
