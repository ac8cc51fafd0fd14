package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".hostawaycfg")
	content := `[DEFAULT]
token = default-token
openai_api_key = sk-default

[staging]
token = staging-token
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	registry, err := NewRegistry(writeProfiles(t))
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DEFAULT", "staging"}, profiles)

	creds, err := registry.GetCredentials(ctx, "staging")
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{HostawayToken: "staging-token"}, creds)

	_, err = registry.GetCredentials(ctx, "prod")
	assert.Error(t, err)
}

func TestResolveCredentials(t *testing.T) {
	ctx := context.Background()
	path := writeProfiles(t)

	tests := []struct {
		name     string
		path     string
		profile  string
		explicit domain.Credentials
		expected domain.Credentials
	}{
		{
			name:     "profile only",
			path:     path,
			profile:  DefaultProfile,
			expected: domain.Credentials{HostawayToken: "default-token", OpenAIKey: "sk-default"},
		},
		{
			name:     "explicit value wins",
			path:     path,
			profile:  "staging",
			explicit: domain.Credentials{OpenAIKey: "sk-flag"},
			expected: domain.Credentials{HostawayToken: "staging-token", OpenAIKey: "sk-flag"},
		},
		{
			name:     "missing file keeps explicit values",
			path:     filepath.Join(t.TempDir(), "none"),
			profile:  DefaultProfile,
			explicit: domain.Credentials{HostawayToken: "tok"},
			expected: domain.Credentials{HostawayToken: "tok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ResolveCredentials(ctx, tt.path, tt.profile, tt.explicit)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, creds)
		})
	}
}
