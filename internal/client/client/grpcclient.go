package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/selfhostdash/internal/api"
	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.DashboardClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = tok
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if tok := s.token(); tok != "" {
		ctx = withAccessToken(ctx, tok)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	// a rejected token is dead; forget it so the prompt shows logged out
	if status.Code(err) == codes.Unauthenticated && method != api.MethodLogin {
		s.setToken("")
	}

	return err
}

// NewDashboardClient connects to endpointURL. timeout bounds each call;
// zero means no client-side deadline.
func NewDashboardClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewDashboardClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Status(ctx context.Context) (*api.StatusResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Status(ctx, &api.StatusRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Signup(ctx context.Context, userName string, password []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &api.SignupRequest{Username: userName, Password: string(password)}

	resp, err := s.client.Signup(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.AccessToken)
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, password []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &api.LoginRequest{Username: userName, Password: string(password)}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.AccessToken)
	return nil
}

// Logout revokes the session on the server and always forgets the local
// token, even when the server cannot be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer s.setToken("")

	if _, err := s.client.Logout(ctx, &api.LogoutRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ListApps(ctx context.Context) ([]api.App, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListApps(ctx, &api.ListAppsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Apps, nil
}

func (s *GRPCClient) OpenApp(ctx context.Context, id string) (*api.App, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.OpenApp(ctx, &api.OpenAppRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.App, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.FailedPrecondition:
		return ErrSignupClosed
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.NotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
