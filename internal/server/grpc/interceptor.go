package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/selfhostdash/internal/api"
	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const tokenKey ctxKey = "accessToken"

// protectedMethods need an access token before they reach the facade.
var protectedMethods = map[string]bool{
	api.MethodListApps: true,
	api.MethodOpenApp:  true,
}

func tokenFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func tokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	accessToken := tokenFromMetadata(ctx)

	if protectedMethods[info.FullMethod] && accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	if accessToken != "" {
		ctx = context.WithValue(ctx, tokenKey, accessToken)
	}

	return handler(ctx, req)
}

// loggingInterceptor records method, status code and latency. Request
// bodies carry passwords and are never logged.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal {
		s.logger.Error(ctx, "rpc failed", args...)
	} else {
		s.logger.Debug(ctx, "rpc", args...)
	}

	return resp, err
}
