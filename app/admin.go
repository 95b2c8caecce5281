package app

import (
	"context"

	"go.uber.org/zap"

	"recipe-manager-api/stats"
	"recipe-manager-api/store"
)

// Overview is everything the admin panel shows
type Overview struct {
	Stats stats.Summary
	Users []stats.UserRow
}

// AdminOverview loads the dashboard figures and the user table filtered by
// search (username or email)
func (a *App) AdminOverview(ctx context.Context, search string) (Overview, error) {
	if err := a.requireAdmin(); err != nil {
		return Overview{}, err
	}
	summary, err := a.api.Stats(ctx)
	if err != nil {
		return Overview{}, a.apiFailure("load stats", err, ErrTryAgain)
	}
	users, err := a.api.ListUsers(ctx, search)
	if err != nil {
		return Overview{}, a.apiFailure("load users", err, ErrTryAgain)
	}
	return Overview{Stats: summary, Users: users}, nil
}

// DeleteUser removes a user with their recipes and drops those recipes from
// the local store
func (a *App) DeleteUser(ctx context.Context, userID string) (int64, error) {
	if err := a.requireAdmin(); err != nil {
		return 0, err
	}
	deleted, err := a.api.DeleteUser(ctx, userID)
	if err != nil {
		return 0, a.apiFailure("delete user", err, ErrTryAgain)
	}
	for _, r := range a.store.State().Recipes {
		if r.UserID == userID {
			a.store.Dispatch(store.DeleteRecipe{ID: r.ID})
		}
	}
	a.log.Info("user deleted", zap.String("user_id", userID), zap.Int64("deleted_recipes", deleted))
	return deleted, nil
}
