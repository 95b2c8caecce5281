package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReview_RecomputesAverage(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	r := s.createRecipe(alice.Token, pancakesBody())

	var last recipeResponse
	for _, rating := range []int{4, 5, 3} {
		w := s.do(http.MethodPost, "/api/recipes/"+r.ID+"/reviews", bob.Token, gin.H{
			"rating": rating, "comment": "tried it",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		last = decode[recipeResponse](t, w)
	}

	assert.Equal(t, 4.0, last.Recipe.AverageRating)
	require.Len(t, last.Recipe.Reviews, 3)
	assert.Equal(t, 4, last.Recipe.Reviews[0].Rating)
	assert.Equal(t, 3, last.Recipe.Reviews[2].Rating)
	assert.Equal(t, "bob", last.Recipe.Reviews[0].Username)
	assert.Equal(t, bob.User.ID, last.Recipe.Reviews[0].UserID)
	assert.Equal(t, r.ID, last.Recipe.Reviews[0].RecipeID)

	w := s.do(http.MethodPost, "/api/recipes/"+r.ID+"/reviews", alice.Token, gin.H{"rating": 4, "comment": "ok"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 4.0, decode[recipeResponse](t, w).Recipe.AverageRating)

	w = s.do(http.MethodPost, "/api/recipes/"+r.ID+"/reviews", alice.Token, gin.H{"rating": 5, "comment": "better"})
	assert.InDelta(t, 21.0/5.0, decode[recipeResponse](t, w).Recipe.AverageRating, 1e-9)
}

func TestAddReview_RecipeNotFound(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	w := s.do(http.MethodPost, "/api/recipes/nope/reviews", alice.Token, gin.H{"rating": 3, "comment": "?"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe not found")
}

func TestAddReview_Validation(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	r := s.createRecipe(alice.Token, pancakesBody())
	path := "/api/recipes/" + r.ID + "/reviews"

	for _, body := range []gin.H{
		{"rating": 0, "comment": "zero"},
		{"rating": 6, "comment": "six"},
		{"rating": 3, "comment": ""},
		{"rating": 3, "comment": "   "},
		{"comment": "no rating"},
	} {
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, path, alice.Token, body).Code, body)
	}
}
