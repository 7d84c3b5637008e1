// Package dashboard is the single entry point the transport layer calls. It
// owns no state: authentication goes to the auth service and the app
// catalog comes from the registry.
package dashboard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"github.com/dmitrijs2005/selfhostdash/internal/server/registry"
)

// Auth is implemented by services.AuthService.
type Auth interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (string, error)
	SignupOpen(ctx context.Context) (bool, error)
}

// Status describes what a client should show before login.
type Status struct {
	SignupOpen bool
	// UserName is set when the presented token is valid.
	UserName string
}

type Facade struct {
	auth     Auth
	registry registry.Registry
}

func New(a Auth, r registry.Registry) *Facade {
	return &Facade{auth: a, registry: r}
}

func (f *Facade) Signup(ctx context.Context, username, password string) (string, error) {
	return f.auth.Signup(ctx, username, password)
}

func (f *Facade) Login(ctx context.Context, username, password string) (string, error) {
	return f.auth.Login(ctx, username, password)
}

func (f *Facade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

// Status never fails on a bad token; it just leaves UserName empty.
func (f *Facade) Status(ctx context.Context, token string) (Status, error) {
	open, err := f.auth.SignupOpen(ctx)
	if err != nil {
		return Status{}, err
	}

	st := Status{SignupOpen: open}
	if token != "" {
		if user, err := f.auth.Authenticate(ctx, token); err == nil {
			st.UserName = user
		}
	}
	return st, nil
}

// Open returns the app catalog for a logged-in user.
func (f *Facade) Open(ctx context.Context, token string) ([]models.AppEntry, error) {
	if err := f.authorize(ctx, token); err != nil {
		return nil, err
	}
	return f.registry.ListApps(ctx)
}

// OpenApp returns the entry for appID. Launching its LaunchTarget is left to
// the caller.
func (f *Facade) OpenApp(ctx context.Context, token, appID string) (models.AppEntry, error) {
	if err := f.authorize(ctx, token); err != nil {
		return models.AppEntry{}, err
	}
	if err := registry.ValidateAppID(appID); err != nil {
		return models.AppEntry{}, err
	}

	apps, err := f.registry.ListApps(ctx)
	if err != nil {
		return models.AppEntry{}, err
	}
	for _, a := range apps {
		if a.ID == appID {
			return a, nil
		}
	}
	return models.AppEntry{}, fmt.Errorf("%w: app %q", common.ErrNotFound, appID)
}

func (f *Facade) authorize(ctx context.Context, token string) error {
	if _, err := f.auth.Authenticate(ctx, token); err != nil {
		return common.ErrUnauthorized
	}
	return nil
}
