package client

import (
	"context"

	"github.com/dmitrijs2005/selfhostdash/internal/api"
)

type Client interface {
	Close() error
	LoggedIn() bool
	Status(ctx context.Context) (*api.StatusResponse, error)
	Signup(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	ListApps(ctx context.Context) ([]api.App, error)
	OpenApp(ctx context.Context, id string) (*api.App, error)
}
