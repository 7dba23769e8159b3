// Package file loads the forgequery configuration from a TOML file and
// captures the environment overrides, producing the document the core
// registry resolves. It performs no validation beyond TOML syntax; semantic
// checks (kind inference, collisions) belong to the registry.
package file

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
)

// fileDocument mirrors the on-disk TOML layout, including the legacy
// top-level sections kept for configs written before named providers.
type fileDocument struct {
	Defaults  defaultsSection            `toml:"defaults"`
	Providers map[string]providerSection `toml:"providers"`

	// Legacy top-level sections.
	GitHub    *legacySection `toml:"github"`
	GitLab    *legacySection `toml:"gitlab"`
	Bitbucket *legacySection `toml:"bitbucket"`
}

type defaultsSection struct {
	Providers []string `toml:"providers"`
	Limit     int      `toml:"limit"`
}

type providerSection struct {
	Type  string `toml:"type"`
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

type legacySection struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// DefaultPath returns the default config file location,
// ~/.forgequery/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".forgequery", "config.toml"), nil
}

// Load reads and parses the config file at path. A missing file is not an
// error: it yields an empty document.
func Load(path string) (domain.ConfigDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ConfigDocument{}, nil
		}
		return domain.ConfigDocument{}, err
	}
	return Parse(data)
}

// Parse decodes a TOML document into the registry's input shape.
func Parse(data []byte) (domain.ConfigDocument, error) {
	var raw fileDocument
	if err := toml.Unmarshal(data, &raw); err != nil {
		return domain.ConfigDocument{}, err
	}

	doc := domain.ConfigDocument{
		Defaults: domain.DefaultsConfig{
			Providers: raw.Defaults.Providers,
			Limit:     raw.Defaults.Limit,
		},
	}

	if len(raw.Providers) > 0 {
		doc.Providers = make(map[string]domain.ProviderEntry, len(raw.Providers))
		for name, section := range raw.Providers {
			doc.Providers[name] = domain.ProviderEntry{
				Kind:    section.Type,
				BaseURL: section.URL,
				Token:   section.Token,
			}
		}
	}

	legacy := map[domain.ProviderKind]*legacySection{
		domain.KindGitHub:    raw.GitHub,
		domain.KindGitLab:    raw.GitLab,
		domain.KindBitbucket: raw.Bitbucket,
	}
	for kind, section := range legacy {
		if section == nil {
			continue
		}
		if doc.Legacy == nil {
			doc.Legacy = make(map[domain.ProviderKind]domain.LegacyEntry, 3)
		}
		doc.Legacy[kind] = domain.LegacyEntry{
			BaseURL: section.URL,
			Token:   section.Token,
		}
	}

	return doc, nil
}

// EnvSnapshot captures the provider override variables ({KIND}_TOKEN,
// {KIND}_URL) for the built-in kinds. Unset and empty variables are omitted.
func EnvSnapshot() map[string]string {
	env := make(map[string]string, 6)
	for _, kind := range domain.Kinds() {
		for _, key := range []string{domain.EnvTokenVar(kind), domain.EnvURLVar(kind)} {
			if value := os.Getenv(key); value != "" {
				env[key] = value
			}
		}
	}
	return env
}
