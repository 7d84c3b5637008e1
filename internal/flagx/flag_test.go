package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-c", "-config", "-a"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "separate value", args: []string{"-c", "dash.json", "-x", "1"}, want: []string{"-c", "dash.json"}},
		{name: "equals form", args: []string{"-config=dash.json", "-x=1"}, want: []string{"-config=dash.json"}},
		{name: "order kept", args: []string{"-a", ":1", "-c", "x.json"}, want: []string{"-a", ":1", "-c", "x.json"}},
		{name: "unknown only", args: []string{"-x", "1", "positional"}, want: []string{}},
		{name: "trailing flag", args: []string{"-c"}, want: []string{"-c"}},
		{name: "next is a flag", args: []string{"-c", "-a", ":2"}, want: []string{"-c", "-a", ":2"}},
		{name: "empty", args: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-a", ":1", "-c", "short.json"}
	assert.Equal(t, "short.json", ConfigPath())

	os.Args = []string{"bin", "-config=long.json"}
	assert.Equal(t, "long.json", ConfigPath())

	os.Args = []string{"bin", "-a", ":1"}
	assert.Equal(t, "", ConfigPath())
}
