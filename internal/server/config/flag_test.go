package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8081", "-m", "127.0.0.1:9091", "-d", "db", "-s", "secret",
				"-t", "30", "-n", "sid", "-k=false", "-w", "12",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
				"-l", "debug",
			},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:8081",
				EndpointAddrGRPC: "127.0.0.1:9091",
				DatabaseDSN:      "db",
				SecretKey:        "secret",
				SessionTTL:       30 * time.Minute,
				CookieName:       "sid",
				CookieSecure:     false,
				BcryptCost:       12,
				S3RootUser:       "user",
				S3RootPassword:   "password",
				S3Bucket:         "bucket",
				S3Region:         "us-west-1",
				S3BaseEndpoint:   "http://endpoint",
				LogLevel:         "debug",
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"-c", "cfg.json", "-z", "1", "-s", "k"},
			expected: &Config{
				SecretKey: "k",
			},
		},
		{
			name:        "bad integer panics",
			args:        []string{"-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
