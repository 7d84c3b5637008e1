package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "selfhostdash.v1.Dashboard"

// Full method names, as seen by interceptors.
const (
	MethodStatus   = "/" + ServiceName + "/Status"
	MethodSignup   = "/" + ServiceName + "/Signup"
	MethodLogin    = "/" + ServiceName + "/Login"
	MethodLogout   = "/" + ServiceName + "/Logout"
	MethodListApps = "/" + ServiceName + "/ListApps"
	MethodOpenApp  = "/" + ServiceName + "/OpenApp"
)

// DashboardServer is implemented by the transport adapter.
type DashboardServer interface {
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	ListApps(context.Context, *ListAppsRequest) (*ListAppsResponse, error)
	OpenApp(context.Context, *OpenAppRequest) (*OpenAppResponse, error)
}

func RegisterDashboardServer(s grpc.ServiceRegistrar, srv DashboardServer) {
	s.RegisterService(&DashboardServiceDesc, srv)
}

func unary[Req, Resp any](fullMethod string, call func(DashboardServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DashboardServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DashboardServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: unary(MethodStatus, DashboardServer.Status)},
		{MethodName: "Signup", Handler: unary(MethodSignup, DashboardServer.Signup)},
		{MethodName: "Login", Handler: unary(MethodLogin, DashboardServer.Login)},
		{MethodName: "Logout", Handler: unary(MethodLogout, DashboardServer.Logout)},
		{MethodName: "ListApps", Handler: unary(MethodListApps, DashboardServer.ListApps)},
		{MethodName: "OpenApp", Handler: unary(MethodOpenApp, DashboardServer.OpenApp)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dashboard.proto",
}

// DashboardClient is the typed client for DashboardServiceDesc.
type DashboardClient interface {
	Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	ListApps(ctx context.Context, in *ListAppsRequest, opts ...grpc.CallOption) (*ListAppsResponse, error)
	OpenApp(ctx context.Context, in *OpenAppRequest, opts ...grpc.CallOption) (*OpenAppResponse, error)
}

type dashboardClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardClient(cc grpc.ClientConnInterface) DashboardClient {
	return &dashboardClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dashboardClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, MethodStatus, in, opts)
}

func (c *dashboardClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, MethodSignup, in, opts)
}

func (c *dashboardClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *dashboardClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *dashboardClient) ListApps(ctx context.Context, in *ListAppsRequest, opts ...grpc.CallOption) (*ListAppsResponse, error) {
	return invoke[ListAppsResponse](ctx, c.cc, MethodListApps, in, opts)
}

func (c *dashboardClient) OpenApp(ctx context.Context, in *OpenAppRequest, opts ...grpc.CallOption) (*OpenAppResponse, error) {
	return invoke[OpenAppResponse](ctx, c.cc, MethodOpenApp, in, opts)
}
