package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_WireFormat(t *testing.T) {
	c := wireCodec{}

	b, err := c.Marshal(&SignupRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	// field 1 "admin", field 2 "pw"
	assert.Equal(t, []byte{0x0a, 5, 'a', 'd', 'm', 'i', 'n', 0x12, 2, 'p', 'w'}, b)

	b, err = c.Marshal(&StatusResponse{SignupOpen: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x01}, b)

	b, err = c.Marshal(&StatusRequest{})
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := wireCodec{}
	calc := App{ID: "calc", DisplayName: "Calculator", IconPath: "/icons/calc.png", LaunchTarget: "calc.bin"}

	tests := []struct {
		name string
		in   wireMessage
		out  wireMessage
	}{
		{"status", &StatusResponse{SignupOpen: true, UserName: "alice"}, &StatusResponse{}},
		{"login", &LoginRequest{Username: "alice", Password: "pw"}, &LoginRequest{}},
		{"token", &SignupResponse{AccessToken: "abc"}, &SignupResponse{}},
		{"list", &ListAppsResponse{Apps: []App{calc, {ID: "terminal", LaunchTarget: "term"}}}, &ListAppsResponse{}},
		{"open", &OpenAppResponse{App: calc}, &OpenAppResponse{}},
		{"open request", &OpenAppRequest{ID: "calc"}, &OpenAppRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := c.Marshal(tt.in)
			require.NoError(t, err)
			require.NoError(t, c.Unmarshal(b, tt.out))
			assert.Equal(t, tt.in, tt.out)
		})
	}
}

func TestCodec_ResetsAndSkipsUnknownFields(t *testing.T) {
	c := wireCodec{}

	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "tok")

	resp := &LoginResponse{AccessToken: "stale"}
	require.NoError(t, c.Unmarshal(b, resp))
	assert.Equal(t, "tok", resp.AccessToken)

	empty := &LoginResponse{AccessToken: "stale"}
	require.NoError(t, c.Unmarshal(nil, empty))
	assert.Empty(t, empty.AccessToken)
}

func TestCodec_Errors(t *testing.T) {
	c := wireCodec{}

	_, err := c.Marshal(struct{}{})
	assert.Error(t, err)
	assert.Error(t, c.Unmarshal(nil, &struct{}{}))

	// length prefix runs past the end
	assert.Error(t, c.Unmarshal([]byte{0x0a, 10, 'x'}, &SignupRequest{}))

	// nested app is truncated
	assert.Error(t, c.Unmarshal([]byte{0x0a, 2, 0x0a, 5}, &ListAppsResponse{}))
}

func TestServiceDesc(t *testing.T) {
	assert.Equal(t, "selfhostdash.v1.Dashboard", DashboardServiceDesc.ServiceName)

	var names []string
	for _, m := range DashboardServiceDesc.Methods {
		names = append(names, m.MethodName)
		assert.NotNil(t, m.Handler)
	}
	assert.Equal(t, []string{"Status", "Signup", "Login", "Logout", "ListApps", "OpenApp"}, names)
	assert.Equal(t, "/selfhostdash.v1.Dashboard/OpenApp", MethodOpenApp)
}
