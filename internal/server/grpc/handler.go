package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/selfhostdash/internal/api"
	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Status(ctx context.Context, req *api.StatusRequest) (*api.StatusResponse, error) {

	st, err := s.dash.Status(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.StatusResponse{SignupOpen: st.SignupOpen, UserName: st.UserName}, nil
}

func (s *GRPCServer) Signup(ctx context.Context, req *api.SignupRequest) (*api.SignupResponse, error) {

	token, err := s.dash.Signup(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return &api.SignupResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	token, err := s.dash.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {

	if token := tokenFromContext(ctx); token != "" {
		if err := s.dash.Logout(ctx, token); err != nil {
			return nil, s.toStatus(ctx, err)
		}
	}

	return &api.LogoutResponse{}, nil
}

func (s *GRPCServer) ListApps(ctx context.Context, req *api.ListAppsRequest) (*api.ListAppsResponse, error) {

	apps, err := s.dash.Open(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]api.App, 0, len(apps))
	for _, a := range apps {
		out = append(out, toAPIApp(a))
	}
	return &api.ListAppsResponse{Apps: out}, nil
}

func (s *GRPCServer) OpenApp(ctx context.Context, req *api.OpenAppRequest) (*api.OpenAppResponse, error) {

	app, err := s.dash.OpenApp(ctx, tokenFromContext(ctx), req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.OpenAppResponse{App: toAPIApp(app)}, nil
}

func toAPIApp(a models.AppEntry) api.App {
	return api.App{
		ID:           a.ID,
		DisplayName:  a.DisplayName,
		IconPath:     a.IconPath,
		LaunchTarget: a.LaunchTarget,
	}
}

// toStatus maps domain errors to gRPC status codes. Authentication
// failures all get the same message.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case common.IsAuthFailure(err):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrBootstrapClosed):
		return status.Error(codes.FailedPrecondition, "signup is closed")
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case common.IsUnavailable(err):
		s.logger.Warn(ctx, "backend unavailable", "error", err)
		return status.Error(codes.Unavailable, "service unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
