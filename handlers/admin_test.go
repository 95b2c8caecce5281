package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-manager-api/models"
	"recipe-manager-api/stats"
)

type statsResponse struct {
	Stats stats.Summary `json:"stats"`
}

type usersResponse struct {
	Count int             `json:"count"`
	Users []stats.UserRow `json:"users"`
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	s := newTestServer(t)
	s.signup("admin")
	alice := s.signup("alice")

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/users", alice.Token, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/stats", alice.Token, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/users/whoever", alice.Token, nil).Code)
}

func TestAdminStatsAndUsers(t *testing.T) {
	s := newTestServer(t)
	admin := s.signup("admin")
	alice := s.signup("alice")
	s.signup("bob")
	s.createRecipe(alice.Token, pancakesBody())
	s.createRecipe(alice.Token, pancakesBody())
	s.createRecipe(admin.Token, pancakesBody())

	w := s.do(http.MethodGet, "/api/admin/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[statsResponse](t, w).Stats
	assert.Equal(t, 3, st.TotalUsers)
	assert.Equal(t, 3, st.TotalRecipes)
	assert.InDelta(t, 1.0, st.AvgRecipesPerUser, 1e-9)
	assert.Equal(t, 2, st.RecipesPerUser[alice.User.ID])

	users := decode[usersResponse](t, s.do(http.MethodGet, "/api/users", admin.Token, nil))
	assert.Equal(t, 3, users.Count)

	found := decode[usersResponse](t, s.do(http.MethodGet, "/api/users?search=ALI", admin.Token, nil))
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "alice", found.Users[0].Username)
	assert.Equal(t, 2, found.Users[0].RecipeCount)
}

func TestAdminDeleteUser_Cascades(t *testing.T) {
	s := newTestServer(t)
	admin := s.signup("admin")
	alice := s.signup("alice")
	bob := s.signup("bob")

	r1 := s.createRecipe(alice.Token, pancakesBody())
	s.createRecipe(alice.Token, pancakesBody())
	kept := s.createRecipe(bob.Token, pancakesBody())
	s.do(http.MethodPost, "/api/recipes/"+r1.ID+"/reviews", bob.Token, gin.H{"rating": 5, "comment": "great"})
	s.do(http.MethodPost, "/api/recipes/"+kept.ID+"/reviews", alice.Token, gin.H{"rating": 2, "comment": "meh"})

	w := s.do(http.MethodDelete, "/api/users/"+alice.User.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"deletedRecipes":2`)

	var recipes, aliceUsers, orphanReviews int64
	s.db.Model(&models.Recipe{}).Where("user_id = ?", alice.User.ID).Count(&recipes)
	s.db.Model(&models.User{}).Where("id = ?", alice.User.ID).Count(&aliceUsers)
	s.db.Model(&models.Review{}).Where("recipe_id = ?", r1.ID).Count(&orphanReviews)
	assert.Zero(t, recipes)
	assert.Zero(t, aliceUsers)
	assert.Zero(t, orphanReviews)

	// bob's recipe survives with alice's review
	w = s.do(http.MethodGet, "/api/recipes/"+kept.ID, bob.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[recipeResponse](t, w).Recipe.Reviews, 1)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/users/"+alice.User.ID, admin.Token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodDelete, "/api/users/"+admin.User.ID, admin.Token, nil).Code)
}

func TestAdminDeleteUser_RevokesToken(t *testing.T) {
	s := newTestServer(t)
	admin := s.signup("admin")
	alice := s.signup("alice")
	r := s.createRecipe(admin.Token, pancakesBody())

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/users/"+alice.User.ID, admin.Token, nil).Code)

	w := s.do(http.MethodPost, "/api/recipes", alice.Token, pancakesBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodPost, "/api/recipes/"+r.ID+"/reviews", alice.Token, gin.H{"rating": 5, "comment": "still here"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/profile", alice.Token, nil).Code)

	st := decode[statsResponse](t, s.do(http.MethodGet, "/api/admin/stats", admin.Token, nil)).Stats
	assert.Equal(t, 1, st.TotalUsers)
	assert.Equal(t, 1, st.TotalRecipes)
	assert.Equal(t, 1, st.RecipesPerUser[admin.User.ID])

	var reviews int64
	require.NoError(t, s.db.Model(&models.Review{}).Where("recipe_id = ?", r.ID).Count(&reviews).Error)
	assert.Zero(t, reviews)
}
