package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "postgres://x", "-a", ":8080"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "postgres://x"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--dsn=postgres://x", "-a", ":8080"},
			allowedFlags: []string{"--dsn"},
			want:         []string{"--dsn=postgres://x"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "flag followed by another flag takes no value",
			args:         []string{"-d", "-a"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "order preserved across mixed forms",
			args:         []string{"--dsn=first", "-d", "second", "-x", "1"},
			allowedFlags: []string{"-d", "--dsn"},
			want:         []string{"--dsn=first", "-d", "second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "conf.json", "-a", ":8080"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cmd", "-a", ":8080"}
	assert.Equal(t, "", JsonConfigFlags())
}
