// Package grpc exposes the dashboard facade over gRPC. It is thin glue:
// decode, call the facade, map errors to status codes.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/selfhostdash/internal/api"
	"github.com/dmitrijs2005/selfhostdash/internal/logging"
	"github.com/dmitrijs2005/selfhostdash/internal/server/dashboard"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"google.golang.org/grpc"
)

// Dashboard is the facade the server delegates to.
type Dashboard interface {
	Status(ctx context.Context, token string) (dashboard.Status, error)
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Open(ctx context.Context, token string) ([]models.AppEntry, error)
	OpenApp(ctx context.Context, token, appID string) (models.AppEntry, error)
}

type GRPCServer struct {
	address string
	dash    Dashboard
	logger  logging.Logger
}

var _ api.DashboardServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, d Dashboard) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		dash:    d,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	// registers service
	api.RegisterDashboardServer(srv, s)

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
