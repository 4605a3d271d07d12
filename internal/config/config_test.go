package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "h5struct.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Config
	}{
		{
			name: "empty file keeps defaults",
			body: "",
			want: Default(),
		},
		{
			name: "all keys",
			body: "log_level = \"debug\"\nmax_depth = 2\nmax_elements = 10\njson = true\n",
			want: Config{LogLevel: "debug", MaxDepth: 2, MaxElements: 10, JSON: true},
		},
		{
			name: "partial",
			body: "max_depth = 4\n",
			want: Config{LogLevel: "warn", MaxDepth: 4, MaxElements: 64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	for _, body := range []string{
		"max_depth = -1\n",
		"max_elements = -3\n",
		"log_level = \"loud\"\n",
		"unknown = 1\n",
		"max_depth = \"deep\"\n",
	} {
		_, err := Load(writeConfig(t, body))
		require.Error(t, err, body)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, Config{LogLevel: "debug"}.Level())
	require.Equal(t, zerolog.WarnLevel, Config{LogLevel: "bogus"}.Level())
}
