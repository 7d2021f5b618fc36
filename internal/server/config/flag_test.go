package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "60", "-k", "12", "-r", "localhost:6379",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
			},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				DatabaseDSN:      "db",
				SecretKey:        "secret",
				SessionTTL:       60 * time.Minute,
				BcryptCost:       12,
				RedisAddr:        "localhost:6379",
				S3RootUser:       "user",
				S3RootPassword:   "password",
				S3Bucket:         "bucket",
				S3Region:         "us-west-1",
				S3BaseEndpoint:   "http://endpoint",
			},
		},
		{
			name: "unset flags keep existing values",
			args: []string{"cmd", "-a", ":9999"},
			expected: &Config{
				EndpointAddrHTTP: ":9999",
				DatabaseDSN:      "keep-dsn",
				SecretKey:        "keep-secret",
				SessionTTL:       30 * time.Minute,
				BcryptCost:       10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()
			os.Args = tt.args

			config := &Config{
				DatabaseDSN: "keep-dsn",
				SecretKey:   "keep-secret",
				SessionTTL:  30 * time.Minute,
				BcryptCost:  10,
			}
			parseFlags(config)

			assert.Equal(t, tt.expected, config)
		})
	}
}
