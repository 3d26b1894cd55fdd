package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
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
			name:    "separate value",
			args:    []string{"-a", "http://api.local", "-d", "300"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://api.local"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=pohonku.yaml", "-a", "x"},
			allowed: []string{"-config"},
			want:    []string{"-config=pohonku.yaml"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-m"},
			allowed: []string{"-m"},
			want:    []string{"-m"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-a", "-d", "300"},
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", "-d", "300"},
		},
		{
			name:    "repeated flag kept in order",
			args:    []string{"-m", "client", "-m", "server"},
			allowed: []string{"-m"},
			want:    []string{"-m", "client", "-m", "server"},
		},
		{
			name:    "empty value in equals form",
			args:    []string{"-a="},
			allowed: []string{"-a"},
			want:    []string{"-a="},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: []string{"-a"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		assert.Equal(t, "/etc/pohonku.json", ConfigFileFlag([]string{"-c", "/etc/pohonku.json"}))
	})

	t.Run("long", func(t *testing.T) {
		assert.Equal(t, "pohonku.yaml", ConfigFileFlag([]string{"-a", "http://x", "-config", "pohonku.yaml"}))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, ConfigFileFlag([]string{"-a", "http://x"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "2.yaml", ConfigFileFlag([]string{"-c", "1.yaml", "-config", "2.yaml"}))
	})
}
