package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-manager-api/config"
	"recipe-manager-api/handlers"
	"recipe-manager-api/middleware"
	"recipe-manager-api/models"
	"recipe-manager-api/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := config.OpenDB(filepath.Join(t.TempDir(), "recipes.db"), zap.NewNop())
	require.NoError(t, err)

	auth := middleware.NewAuth("test-secret", time.Hour)
	r := routes.NewRouter(routes.Deps{
		Handler:     handlers.New(db, auth),
		Auth:        auth,
		Metrics:     middleware.NewMetrics(),
		Logger:      zap.NewNop(),
		CORSOrigins: []string{"*"},
	})
	return &testServer{t: t, db: db, router: r}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type recipeResponse struct {
	Recipe models.Recipe `json:"recipe"`
}

type recipesResponse struct {
	Count   int             `json:"count"`
	Recipes []models.Recipe `json:"recipes"`
}

// signup registers username with a derived email and returns token and user
func (s *testServer) signup(username string) authResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/users", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[authResponse](s.t, w)
}

func (s *testServer) createRecipe(token string, body gin.H) models.Recipe {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/recipes", token, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[recipeResponse](s.t, w).Recipe
}

func pancakesBody() gin.H {
	return gin.H{
		"title":           "Pancakes",
		"category":        "Breakfast",
		"ingredients":     []string{" flour ", "egg", ""},
		"instructions":    "Mix and fry.",
		"preparationTime": 10,
	}
}
