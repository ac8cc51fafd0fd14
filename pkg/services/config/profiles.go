package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const (
	DefaultProfile = "DEFAULT"

	keyToken     = "token"
	keyOpenAIKey = "openai_api_key"
)

// Registry reads named credential profiles.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetCredentials(ctx context.Context, profile string) (domain.Credentials, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultProfilesPath is ~/.hostawaycfg.
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hostawaycfg"
	}
	return filepath.Join(home, ".hostawaycfg")
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

// GetCredentials returns whatever the profile holds; callers validate.
func (cr *cfgRegistry) GetCredentials(_ context.Context, profile string) (domain.Credentials, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("profile %s not found", profile)
	}

	return domain.Credentials{
		HostawayToken: section.Key(keyToken).String(),
		OpenAIKey:     section.Key(keyOpenAIKey).String(),
	}, nil
}

// ResolveCredentials layers explicit values over the profile. A missing
// profiles file is not an error when both values were given.
func ResolveCredentials(ctx context.Context, path, profile string, explicit domain.Credentials) (domain.Credentials, error) {
	if explicit.HostawayToken != "" && explicit.OpenAIKey != "" {
		return explicit, nil
	}
	if _, err := os.Stat(path); err != nil {
		return explicit, nil
	}

	registry, err := NewRegistry(path)
	if err != nil {
		return domain.Credentials{}, err
	}
	stored, err := registry.GetCredentials(ctx, profile)
	if err != nil {
		return domain.Credentials{}, err
	}
	if explicit.HostawayToken != "" {
		stored.HostawayToken = explicit.HostawayToken
	}
	if explicit.OpenAIKey != "" {
		stored.OpenAIKey = explicit.OpenAIKey
	}
	return stored, nil
}
