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
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8081", "-g", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "1", "-r", "3", "-v", "5", "-x", "2", "-l", "debug",
			},
			expected: &Config{
				EndpointAddrHTTP:             "127.0.0.1:8081",
				EndpointAddrGRPC:             "127.0.0.1:9090",
				DatabaseDSN:                  "db",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  1 * time.Minute,
				RefreshTokenValidityDuration: 3 * time.Minute,
				VerificationSessionValidity:  5 * time.Minute,
				VerificationCodeTTL:          2 * time.Minute,
				LogLevel:                     "debug",
			},
		},
		{
			name: "unknown flags are filtered out",
			args: []string{"-c", "cfg.json", "-s", "secret", "-zzz"},
			expected: &Config{
				SecretKey: "secret",
			},
		},
		{
			name:      "bad duration",
			args:      []string{"-t", "soon"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsSubMinuteDurationsWhenNotPassed(t *testing.T) {
	config := &Config{VerificationSessionValidity: 90 * time.Second}

	require.NoError(t, parseFlags(config, []string{"-s", "k"}))
	assert.Equal(t, 90*time.Second, config.VerificationSessionValidity)
}
