package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps allowed flag with separate value",
			args:    []string{"-a", "localhost:8000", "-x", "junk"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:8000"},
		},
		{
			name:    "keeps allowed flag with equals value",
			args:    []string{"--config=conf.json", "--other=1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "drops unknown flags entirely",
			args:    []string{"-z", "1", "-q"},
			allowed: []string{"-a"},
			want:    []string{},
		},
		{
			name:    "flag followed by another flag has no value",
			args:    []string{"-a", "-b", "val"},
			allowed: []string{"-a", "-b"},
			want:    []string{"-a", "-b", "val"},
		},
		{
			name:    "empty input",
			args:    nil,
			allowed: []string{"-a"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "long form", args: []string{"app", "-config", "conf.json"}, want: "conf.json"},
		{name: "short form", args: []string{"app", "-c", "c.json"}, want: "c.json"},
		{name: "equals form", args: []string{"app", "-config=x.json"}, want: "x.json"},
		{name: "absent", args: []string{"app", "-a", "host:1"}, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			os.Args = tc.args
			require.Equal(t, tc.want, JsonConfigFlags())
		})
	}
}
