package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/selfhostdash/internal/api"
	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/logging"
	"github.com/dmitrijs2005/selfhostdash/internal/server/dashboard"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeDashboard struct {
	status    dashboard.Status
	statusErr error

	token   string
	authErr error

	apps    []models.AppEntry
	appsErr error

	lastToken string
	logouts   int
}

func (f *fakeDashboard) Status(_ context.Context, token string) (dashboard.Status, error) {
	f.lastToken = token
	return f.status, f.statusErr
}

func (f *fakeDashboard) Signup(context.Context, string, string) (string, error) {
	return f.token, f.authErr
}

func (f *fakeDashboard) Login(context.Context, string, string) (string, error) {
	return f.token, f.authErr
}

func (f *fakeDashboard) Logout(_ context.Context, token string) error {
	f.lastToken = token
	f.logouts++
	return nil
}

func (f *fakeDashboard) Open(_ context.Context, token string) ([]models.AppEntry, error) {
	f.lastToken = token
	return f.apps, f.appsErr
}

func (f *fakeDashboard) OpenApp(_ context.Context, token, id string) (models.AppEntry, error) {
	f.lastToken = token
	if f.appsErr != nil {
		return models.AppEntry{}, f.appsErr
	}
	for _, a := range f.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return models.AppEntry{}, common.ErrNotFound
}

func withToken(tok string) context.Context {
	return context.WithValue(context.Background(), tokenKey, tok)
}

// ---- tests ----

func TestHandlers_HappyPath(t *testing.T) {
	calc := models.AppEntry{ID: "calc", DisplayName: "Calculator", IconPath: "i/calc.png", LaunchTarget: "calc-bin"}
	f := &fakeDashboard{token: "tok", apps: []models.AppEntry{calc}, status: dashboard.Status{UserName: "admin"}}
	s := NewGRPCServer("", nopLogger{}, f)

	su, err := s.Signup(context.Background(), &api.SignupRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", su.AccessToken)

	li, err := s.Login(context.Background(), &api.LoginRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", li.AccessToken)

	st, err := s.Status(withToken("tok"), &api.StatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, "admin", st.UserName)
	assert.Equal(t, "tok", f.lastToken)

	la, err := s.ListApps(withToken("tok"), &api.ListAppsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []api.App{{ID: "calc", DisplayName: "Calculator", IconPath: "i/calc.png", LaunchTarget: "calc-bin"}}, la.Apps)

	oa, err := s.OpenApp(withToken("tok"), &api.OpenAppRequest{ID: "calc"})
	require.NoError(t, err)
	assert.Equal(t, "calc-bin", oa.App.LaunchTarget)

	_, err = s.Logout(withToken("tok"), &api.LogoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.logouts)
}

func TestListApps_EmptyIsNotNil(t *testing.T) {
	s := NewGRPCServer("", nopLogger{}, &fakeDashboard{})
	resp, err := s.ListApps(withToken("tok"), &api.ListAppsRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Apps)
}

func TestLogout_WithoutTokenIsNoop(t *testing.T) {
	f := &fakeDashboard{}
	s := NewGRPCServer("", nopLogger{}, f)

	_, err := s.Logout(context.Background(), &api.LogoutRequest{})
	require.NoError(t, err)
	assert.Zero(t, f.logouts)
}

func TestToStatus(t *testing.T) {
	s := NewGRPCServer("", nopLogger{}, &fakeDashboard{})

	tests := []struct {
		err  error
		code codes.Code
		msg  string
	}{
		{err: common.ErrInvalidCredentials, code: codes.Unauthenticated, msg: "unauthorized"},
		{err: common.ErrInvalidSession, code: codes.Unauthenticated, msg: "unauthorized"},
		{err: common.ErrUnauthorized, code: codes.Unauthenticated, msg: "unauthorized"},
		{err: common.ErrBootstrapClosed, code: codes.FailedPrecondition},
		{err: common.ErrAlreadyExists, code: codes.AlreadyExists},
		{err: fmt.Errorf("%w: empty username", common.ErrValidation), code: codes.InvalidArgument},
		{err: fmt.Errorf("%w: app %q", common.ErrNotFound, "x"), code: codes.NotFound},
		{err: fmt.Errorf("%w: dial: refused", common.ErrStoreUnavailable), code: codes.Unavailable, msg: "service unavailable"},
		{err: common.ErrRegistryUnavailable, code: codes.Unavailable},
		{err: fmt.Errorf("signup: %w", context.Canceled), code: codes.Canceled},
		{err: context.DeadlineExceeded, code: codes.DeadlineExceeded},
		{err: errors.New("boom"), code: codes.Internal, msg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			st, ok := status.FromError(s.toStatus(context.Background(), tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			if tt.msg != "" {
				assert.Equal(t, tt.msg, st.Message())
			}
		})
	}
}

func TestHandlers_MapErrors(t *testing.T) {
	f := &fakeDashboard{authErr: common.ErrBootstrapClosed, appsErr: common.ErrUnauthorized, statusErr: common.ErrStoreUnavailable}
	s := NewGRPCServer("", nopLogger{}, f)

	_, err := s.Signup(context.Background(), &api.SignupRequest{})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = s.ListApps(withToken("bad"), &api.ListAppsRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = s.OpenApp(withToken("bad"), &api.OpenAppRequest{ID: "calc"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = s.Status(context.Background(), &api.StatusRequest{})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	f.authErr = common.ErrInvalidCredentials
	_, err = s.Login(context.Background(), &api.LoginRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
