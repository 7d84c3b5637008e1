package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/selfhostdash/internal/api"
	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer() *GRPCServer {
	return NewGRPCServer("", nopLogger{}, &fakeDashboard{})
}

func incoming(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestInterceptor_UnprotectedAllowsWithoutToken(t *testing.T) {
	s := newTestServer()

	for _, m := range []string{api.MethodStatus, api.MethodSignup, api.MethodLogin, api.MethodLogout} {
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			assert.Empty(t, tokenFromContext(ctx))
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m}, h)
		require.NoError(t, err, m)
		assert.True(t, called, m)
		assert.Equal(t, "ok", resp)
	}
}

func TestInterceptor_ProtectedMissingToken(t *testing.T) {
	s := newTestServer()

	for _, m := range []string{api.MethodListApps, api.MethodOpenApp} {
		h := func(context.Context, any) (any, error) {
			t.Fatal("handler should not be called when token missing")
			return nil, nil
		}

		_, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m}, h)
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.Unauthenticated, st.Code())
		assert.Equal(t, "missing token", st.Message())
	}
}

func TestInterceptor_PassesToken(t *testing.T) {
	s := newTestServer()

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got = tokenFromContext(ctx)
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(incoming("abc123"), nil, &grpc.UnaryServerInfo{FullMethod: api.MethodListApps}, h)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestServer()
	h := func(context.Context, any) (any, error) {
		return nil, status.Error(codes.Internal, "x")
	}

	_, err := s.loggingInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: api.MethodStatus}, h)
	assert.Equal(t, codes.Internal, status.Code(err))
}
