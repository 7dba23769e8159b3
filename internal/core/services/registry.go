package services

import (
	"sort"
	"strings"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driving"
	"github.com/forgequery/forgequery-cli/internal/logger"
)

// DefaultLimit is the per-provider result cap when neither the flag nor the
// config file sets one.
const DefaultLimit = 10

// Ensure Registry implements the interface.
var _ driving.Registry = (*Registry)(nil)

// Registry holds the resolved provider instances of one invocation.
//
// It is built from three ordered sources, highest precedence last: legacy
// top-level config sections (migrated, never dropped), new-style named
// sections, and environment overrides for the built-in-named instances.
// Resolution is pure: no network or filesystem access.
type Registry struct {
	providers map[string]domain.ProviderConfig
	defaults  domain.DefaultsConfig
}

// NewRegistry resolves a configuration document plus an environment snapshot
// into a named provider mapping. It fails with a ConfigError when a name
// collides across sources with incompatible kinds, when a non-built-in name
// lacks an explicit kind, or when a declared kind is unknown.
func NewRegistry(doc domain.ConfigDocument, env map[string]string) (*Registry, error) {
	entries, err := mergeSources(doc, env)
	if err != nil {
		return nil, err
	}

	providers := make(map[string]domain.ProviderConfig, len(entries))
	for name, entry := range entries {
		cfg, err := resolveEntry(name, entry)
		if err != nil {
			return nil, err
		}
		providers[name] = cfg
	}

	logger.Debug("Resolved %d configured provider(s)", len(providers))

	return &Registry{
		providers: providers,
		defaults:  doc.Defaults,
	}, nil
}

// mergeSources folds legacy sections, new-style sections, and environment
// overrides into one entry per instance name.
func mergeSources(doc domain.ConfigDocument, env map[string]string) (map[string]domain.ProviderEntry, error) {
	entries := make(map[string]domain.ProviderEntry)

	// Lowest precedence: legacy top-level sections. Their section name is
	// the kind.
	for kind, legacy := range doc.Legacy {
		if !kind.Valid() {
			return nil, domain.NewConfigError(string(kind), "legacy section has unknown kind")
		}
		entries[string(kind)] = domain.ProviderEntry{
			Kind:    string(kind),
			BaseURL: legacy.BaseURL,
			Token:   legacy.Token,
		}
	}

	// New-style named sections override legacy field by field.
	for name, entry := range doc.Providers {
		cur, exists := entries[name]
		if !exists {
			entries[name] = entry
			continue
		}
		if entry.Kind != "" && !strings.EqualFold(entry.Kind, cur.Kind) {
			return nil, domain.NewConfigError(name,
				"kind %q conflicts with legacy section kind %q", entry.Kind, cur.Kind)
		}
		if entry.BaseURL != "" {
			cur.BaseURL = entry.BaseURL
		}
		if entry.Token != "" {
			cur.Token = entry.Token
		}
		entries[name] = cur
	}

	// Environment overrides win for the built-in-named instances,
	// regardless of what the file configured.
	for _, kind := range domain.Kinds() {
		token := env[domain.EnvTokenVar(kind)]
		url := env[domain.EnvURLVar(kind)]
		if token == "" && url == "" {
			continue
		}
		cur, exists := entries[string(kind)]
		if !exists {
			cur = domain.ProviderEntry{Kind: string(kind)}
		}
		if token != "" {
			cur.Token = token
		}
		if url != "" {
			cur.BaseURL = url
		}
		entries[string(kind)] = cur
		logger.Debug("Environment override applied for %s", kind)
	}

	return entries, nil
}

// resolveEntry validates one merged entry and fills in kind inference and the
// default base URL.
func resolveEntry(name string, entry domain.ProviderEntry) (domain.ProviderConfig, error) {
	var kind domain.ProviderKind
	switch {
	case entry.Kind != "":
		kind = domain.ProviderKind(strings.ToLower(entry.Kind))
		if !kind.Valid() {
			return domain.ProviderConfig{}, domain.NewConfigError(name,
				"unknown provider kind %q", entry.Kind)
		}
	default:
		inferred, ok := domain.KindFromName(name)
		if !ok {
			return domain.ProviderConfig{}, domain.NewConfigError(name,
				"kind is required for names other than github, gitlab, or bitbucket")
		}
		kind = inferred
	}

	baseURL := entry.BaseURL
	if baseURL == "" {
		baseURL = kind.DefaultBaseURL()
	}

	return domain.ProviderConfig{
		Name:    name,
		Kind:    kind,
		BaseURL: baseURL,
		Token:   entry.Token,
	}, nil
}

// Resolve returns the configuration for an instance name. Built-in names
// resolve to tokenless defaults even when unconfigured.
func (r *Registry) Resolve(name string) (domain.ProviderConfig, bool) {
	if cfg, ok := r.providers[name]; ok {
		return cfg, true
	}
	if kind, ok := domain.KindFromName(name); ok {
		return domain.ProviderConfig{
			Name:    name,
			Kind:    kind,
			BaseURL: kind.DefaultBaseURL(),
		}, true
	}
	return domain.ProviderConfig{}, false
}

// Names returns every resolvable instance name, sorted. The three built-ins
// are always present so that `forgequery -p all` and --list-providers cover
// them even without configuration.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers)+3)
	for name := range r.providers {
		names = append(names, name)
	}
	for _, kind := range domain.Kinds() {
		if _, ok := r.providers[string(kind)]; !ok {
			names = append(names, string(kind))
		}
	}
	sort.Strings(names)
	return names
}

// DefaultSelection returns the configured default providers, falling back to
// the three built-ins.
func (r *Registry) DefaultSelection() []string {
	if len(r.defaults.Providers) > 0 {
		return append([]string(nil), r.defaults.Providers...)
	}
	return []string{
		string(domain.KindGitHub),
		string(domain.KindGitLab),
		string(domain.KindBitbucket),
	}
}

// DefaultLimit returns the configured per-provider result cap, falling back
// to the package default.
func (r *Registry) DefaultLimit() int {
	if r.defaults.Limit > 0 {
		return r.defaults.Limit
	}
	return DefaultLimit
}
