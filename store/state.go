// Package store is the client-side recipe state container. State only
// changes through Reduce, which is pure; Store serializes dispatches and
// notifies subscribers.
package store

import (
	"sync"

	"recipe-manager-api/models"
)

type State struct {
	Recipes        []models.Recipe
	Current        *models.Recipe
	SearchTerm     string
	FilterCategory models.Category
}

// Criteria returns the active search and category filter
func (s State) Criteria() Criteria {
	return Criteria{SearchTerm: s.SearchTerm, Category: s.FilterCategory}
}

// Visible is the recipe list after search and category filtering
func (s State) Visible() []models.Recipe {
	return Filter(s.Recipes, s.Criteria())
}

// Action is a state change request. Every action carries data the server
// already confirmed, so reducers only replace entries.
type Action interface {
	actionName() string
}

type (
	SetRecipes        struct{ Recipes []models.Recipe }
	AddRecipe         struct{ Recipe models.Recipe }
	UpdateRecipe      struct{ Recipe models.Recipe }
	DeleteRecipe      struct{ ID string }
	SetCurrent        struct{ Recipe *models.Recipe }
	SetSearchTerm     struct{ Term string }
	SetFilterCategory struct{ Category models.Category }
	FavoriteToggled   struct{ Recipe models.Recipe }
	ReviewAdded       struct{ Recipe models.Recipe }
)

func (SetRecipes) actionName() string        { return "recipe/setRecipes" }
func (AddRecipe) actionName() string         { return "recipe/addRecipe" }
func (UpdateRecipe) actionName() string      { return "recipe/updateRecipe" }
func (DeleteRecipe) actionName() string      { return "recipe/deleteRecipe" }
func (SetCurrent) actionName() string        { return "recipe/setCurrentRecipe" }
func (SetSearchTerm) actionName() string     { return "recipe/setSearchTerm" }
func (SetFilterCategory) actionName() string { return "recipe/setFilterCategory" }
func (FavoriteToggled) actionName() string   { return "recipe/toggleFavorite" }
func (ReviewAdded) actionName() string       { return "recipe/addReview" }

// Name returns the action's type string, used for logging
func Name(a Action) string {
	return a.actionName()
}

// Reduce returns the state that results from applying a to s. s is never
// modified; the recipe slice is copied whenever it changes.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetRecipes:
		recipes := make([]models.Recipe, len(a.Recipes))
		for i, r := range a.Recipes {
			recipes[i] = withReviews(r)
		}
		s.Recipes = recipes
	case AddRecipe:
		r := a.Recipe
		r.Reviews = []models.Review{}
		s.Recipes = append(cloneRecipes(s.Recipes), r)
	case UpdateRecipe:
		s = replace(s, withReviews(a.Recipe))
	case FavoriteToggled:
		s = replace(s, a.Recipe)
	case ReviewAdded:
		s = replace(s, a.Recipe)
	case DeleteRecipe:
		recipes := make([]models.Recipe, 0, len(s.Recipes))
		for _, r := range s.Recipes {
			if r.ID != a.ID {
				recipes = append(recipes, r)
			}
		}
		s.Recipes = recipes
		if s.Current != nil && s.Current.ID == a.ID {
			s.Current = nil
		}
	case SetCurrent:
		if a.Recipe == nil {
			s.Current = nil
		} else {
			r := withReviews(*a.Recipe)
			s.Current = &r
		}
	case SetSearchTerm:
		s.SearchTerm = a.Term
	case SetFilterCategory:
		s.FilterCategory = a.Category
	}
	return s
}

// replace swaps the list entry and the current recipe that share r's id.
// Unknown ids leave the list untouched.
func replace(s State, r models.Recipe) State {
	for i := range s.Recipes {
		if s.Recipes[i].ID == r.ID {
			s.Recipes = cloneRecipes(s.Recipes)
			s.Recipes[i] = r
			break
		}
	}
	if s.Current != nil && s.Current.ID == r.ID {
		cur := r
		s.Current = &cur
	}
	return s
}

func withReviews(r models.Recipe) models.Recipe {
	if r.Reviews == nil {
		r.Reviews = []models.Review{}
	}
	return r
}

func cloneRecipes(in []models.Recipe) []models.Recipe {
	out := make([]models.Recipe, len(in))
	copy(out, in)
	return out
}

// Store holds the current State behind Dispatch
type Store struct {
	mu          sync.RWMutex
	state       State
	nextID      int
	subscribers map[int]func(State)
}

func New() *Store {
	return &Store{subscribers: make(map[int]func(State))}
}

// Dispatch applies a and notifies subscribers with the new state
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Visible is the filtered recipe list for the current state
func (s *Store) Visible() []models.Recipe {
	return s.State().Visible()
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
