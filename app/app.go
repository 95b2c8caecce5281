// Package app is the client side of the recipe manager: it gates views on
// the stored session and keeps the recipe store in step with the API.
package app

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"recipe-manager-api/client"
	"recipe-manager-api/models"
	"recipe-manager-api/session"
	"recipe-manager-api/store"
)

const (
	PathHome    = "/"
	PathRecipes = "/recipes"
	PathAdmin   = "/admin"

	recipePrefix = "/recipe/"
)

// App holds the signed-in user together with the API client and the store
type App struct {
	sessions *session.Store
	api      *client.Client
	store    *store.Store
	log      *zap.Logger

	mu   sync.RWMutex
	user *models.User
}

func New(sessions *session.Store, api *client.Client, st *store.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if st == nil {
		st = store.New()
	}
	return &App{
		sessions: sessions,
		api:      api,
		store:    st,
		log:      log.Named("app"),
	}
}

func (a *App) Store() *store.Store { return a.store }

// User returns the signed-in user, if any
func (a *App) User() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

// Restore signs in from the stored session. A missing session leaves the
// app signed out without error; an unreadable one is cleared.
func (a *App) Restore() error {
	sess, err := a.sessions.Load()
	if errors.Is(err, session.ErrNoSession) {
		a.setUser(nil, "")
		return nil
	}
	if err != nil {
		a.log.Warn("stored session unreadable", zap.Error(err))
		a.setUser(nil, "")
		return err
	}
	a.setUser(&sess.User, sess.Token)
	a.log.Info("session restored", zap.String("username", sess.User.Username))
	return nil
}

// Route resolves path to the view that should be shown, following redirects
func (a *App) Route(path string) string {
	user, signedIn := a.User()
	switch {
	case path == PathHome:
		if signedIn {
			return PathRecipes
		}
		return PathHome
	case path == PathRecipes || isRecipePath(path):
		if signedIn {
			return path
		}
		return PathHome
	case path == PathAdmin && signedIn && user.IsAdmin:
		return path
	}
	return a.Route(PathHome)
}

func isRecipePath(path string) bool {
	id, ok := strings.CutPrefix(path, recipePrefix)
	return ok && id != "" && !strings.Contains(id, "/")
}

func (a *App) setUser(u *models.User, token string) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
	a.api.SetToken(token)
}

func (a *App) requireUser() (models.User, error) {
	u, ok := a.User()
	if !ok {
		return models.User{}, ErrNotSignedIn
	}
	return u, nil
}

func (a *App) requireAdmin() error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	if !u.IsAdmin {
		return ErrAdminOnly
	}
	return nil
}

// apiFailure maps a transport or server failure onto what the user sees.
// Missing records keep their client.ErrNotFound identity.
func (a *App) apiFailure(action string, err error, fallback error) error {
	a.log.Warn(action+" failed", zap.Error(err))
	if errors.Is(err, client.ErrNotFound) {
		return err
	}
	return fallback
}
