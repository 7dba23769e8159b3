package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
)

func TestNewRegistry(t *testing.T) {
	t.Run("empty document resolves built-ins on demand", func(t *testing.T) {
		reg, err := NewRegistry(domain.ConfigDocument{}, nil)
		require.NoError(t, err)

		cfg, ok := reg.Resolve("github")
		require.True(t, ok)
		assert.Equal(t, domain.KindGitHub, cfg.Kind)
		assert.Equal(t, "https://api.github.com", cfg.BaseURL)
		assert.False(t, cfg.Authenticated())
	})

	t.Run("legacy section migrates to a named instance", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Legacy: map[domain.ProviderKind]domain.LegacyEntry{
				domain.KindGitLab: {Token: "legacy-token", BaseURL: "https://git.corp.example"},
			},
		}
		reg, err := NewRegistry(doc, nil)
		require.NoError(t, err)

		cfg, ok := reg.Resolve("gitlab")
		require.True(t, ok)
		assert.Equal(t, domain.KindGitLab, cfg.Kind)
		assert.Equal(t, "https://git.corp.example", cfg.BaseURL)
		assert.Equal(t, "legacy-token", cfg.Token)
	})

	t.Run("new-style section overrides legacy field by field", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Legacy: map[domain.ProviderKind]domain.LegacyEntry{
				domain.KindGitHub: {Token: "legacy-token", BaseURL: "https://legacy.example"},
			},
			Providers: map[string]domain.ProviderEntry{
				"github": {Token: "new-token"},
			},
		}
		reg, err := NewRegistry(doc, nil)
		require.NoError(t, err)

		cfg, _ := reg.Resolve("github")
		assert.Equal(t, "new-token", cfg.Token)
		assert.Equal(t, "https://legacy.example", cfg.BaseURL)
	})

	t.Run("environment beats file configuration", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Providers: map[string]domain.ProviderEntry{
				"github": {Token: "file-token", BaseURL: "https://file.example"},
			},
		}
		env := map[string]string{
			"GITHUB_TOKEN": "env-token",
			"GITHUB_URL":   "https://env.example",
		}
		reg, err := NewRegistry(doc, env)
		require.NoError(t, err)

		cfg, _ := reg.Resolve("github")
		assert.Equal(t, "env-token", cfg.Token)
		assert.Equal(t, "https://env.example", cfg.BaseURL)
	})

	t.Run("environment alone creates a built-in instance", func(t *testing.T) {
		reg, err := NewRegistry(domain.ConfigDocument{}, map[string]string{
			"BITBUCKET_TOKEN": "env-token",
		})
		require.NoError(t, err)

		cfg, _ := reg.Resolve("bitbucket")
		assert.Equal(t, domain.KindBitbucket, cfg.Kind)
		assert.Equal(t, "https://api.bitbucket.org/2.0", cfg.BaseURL)
		assert.True(t, cfg.Authenticated())
	})

	t.Run("custom name with explicit kind", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Providers: map[string]domain.ProviderEntry{
				"corp": {Kind: "gitlab", BaseURL: "https://git.corp.example", Token: "t"},
			},
		}
		reg, err := NewRegistry(doc, nil)
		require.NoError(t, err)

		cfg, ok := reg.Resolve("corp")
		require.True(t, ok)
		assert.Equal(t, domain.KindGitLab, cfg.Kind)
	})

	t.Run("custom name without kind fails", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Providers: map[string]domain.ProviderEntry{
				"corp": {BaseURL: "https://git.corp.example"},
			},
		}
		_, err := NewRegistry(doc, nil)
		require.Error(t, err)
		assert.True(t, domain.IsConfigError(err))
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Providers: map[string]domain.ProviderEntry{
				"corp": {Kind: "gitea"},
			},
		}
		_, err := NewRegistry(doc, nil)
		require.Error(t, err)
		assert.True(t, domain.IsConfigError(err))
	})

	t.Run("kind conflicting with legacy section fails", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Legacy: map[domain.ProviderKind]domain.LegacyEntry{
				domain.KindGitHub: {Token: "t"},
			},
			Providers: map[string]domain.ProviderEntry{
				"github": {Kind: "gitlab"},
			},
		}
		_, err := NewRegistry(doc, nil)
		require.Error(t, err)
		assert.True(t, domain.IsConfigError(err))
	})
}

func TestRegistryNames(t *testing.T) {
	doc := domain.ConfigDocument{
		Providers: map[string]domain.ProviderEntry{
			"corp": {Kind: "gitlab", Token: "t"},
		},
	}
	reg, err := NewRegistry(doc, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"bitbucket", "corp", "github", "gitlab"}, reg.Names())
}

func TestRegistryDefaults(t *testing.T) {
	t.Run("fallbacks", func(t *testing.T) {
		reg, err := NewRegistry(domain.ConfigDocument{}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"github", "gitlab", "bitbucket"}, reg.DefaultSelection())
		assert.Equal(t, DefaultLimit, reg.DefaultLimit())
	})

	t.Run("configured", func(t *testing.T) {
		doc := domain.ConfigDocument{
			Defaults: domain.DefaultsConfig{
				Providers: []string{"github"},
				Limit:     25,
			},
		}
		reg, err := NewRegistry(doc, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"github"}, reg.DefaultSelection())
		assert.Equal(t, 25, reg.DefaultLimit())
	})
}
