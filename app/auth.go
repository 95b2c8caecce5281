package app

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"recipe-manager-api/client"
	"recipe-manager-api/models"
	"recipe-manager-api/session"
	"recipe-manager-api/store"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (in SignupInput) validate() error {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Username) == "" {
		errs["username"] = "Username is required"
	}
	switch {
	case strings.TrimSpace(in.Email) == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(in.Email):
		errs["email"] = "Email is invalid"
	}
	switch {
	case in.Password == "":
		errs["password"] = "Password is required"
	case len(in.Password) < 6:
		errs["password"] = "Password must be at least 6 characters"
	}
	if in.Password != in.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs.orNil()
}

// Login checks credentials with the API and stores the session
func (a *App) Login(ctx context.Context, username, password string) (models.User, error) {
	errs := FieldErrors{}
	if strings.TrimSpace(username) == "" {
		errs["username"] = "Username is required"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	if err := errs.orNil(); err != nil {
		return models.User{}, err
	}

	res, err := a.api.Login(ctx, strings.TrimSpace(username), password)
	if errors.Is(err, client.ErrUnauthorized) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, a.apiFailure("login", err, ErrTryAgain)
	}
	if err := a.signIn(res); err != nil {
		return models.User{}, err
	}
	return res.User, nil
}

// Signup creates the account and signs straight in
func (a *App) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	if err := in.validate(); err != nil {
		return models.User{}, err
	}
	res, err := a.api.Signup(ctx, strings.TrimSpace(in.Username), strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		a.log.Warn("signup failed", zap.Error(err))
		return models.User{}, ErrSignupFailed
	}
	if err := a.signIn(res); err != nil {
		return models.User{}, err
	}
	return res.User, nil
}

// Logout clears the stored session and the local recipe state
func (a *App) Logout() error {
	err := a.sessions.Clear()
	a.setUser(nil, "")
	a.store.Dispatch(store.SetCurrent{})
	a.store.Dispatch(store.SetRecipes{})
	a.log.Info("signed out")
	return err
}

func (a *App) signIn(res client.AuthResult) error {
	if err := a.sessions.Save(session.Session{User: res.User, Token: res.Token}); err != nil {
		return err
	}
	u := res.User
	a.setUser(&u, res.Token)
	a.log.Info("signed in", zap.String("username", u.Username), zap.Bool("admin", u.IsAdmin))
	return nil
}
