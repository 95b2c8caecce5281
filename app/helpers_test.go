package app_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-manager-api/app"
	"recipe-manager-api/client"
	"recipe-manager-api/config"
	"recipe-manager-api/handlers"
	"recipe-manager-api/middleware"
	"recipe-manager-api/models"
	"recipe-manager-api/routes"
	"recipe-manager-api/session"
	"recipe-manager-api/store"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := config.OpenDB(filepath.Join(t.TempDir(), "recipes.db"), zap.NewNop())
	require.NoError(t, err)
	auth := middleware.NewAuth("test-secret", time.Hour)
	srv := httptest.NewServer(routes.NewRouter(routes.Deps{
		Handler: handlers.New(db, auth),
		Auth:    auth,
		Logger:  zap.NewNop(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSessions(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newApp(t *testing.T, srv *httptest.Server, sessions *session.Store) *app.App {
	t.Helper()
	return app.New(sessions, client.New(srv.URL), store.New(), zap.NewNop())
}

// signedUp returns an app with a fresh account already signed in
func signedUp(t *testing.T, srv *httptest.Server, username string) *app.App {
	t.Helper()
	a := newApp(t, srv, newSessions(t))
	_, err := a.Signup(context.Background(), app.SignupInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	return a
}

func pancakes() app.RecipeForm {
	return app.RecipeForm{
		Title:           "Pancakes",
		Category:        models.CategoryBreakfast,
		Ingredients:     "flour, egg",
		Instructions:    "Mix and fry.",
		PreparationTime: 10,
	}
}
