package domain

// ConfigDocument is the structured configuration consumed by the registry.
// It is produced by the file adapter (and defaults to its zero value when no
// config file exists); the registry never reads the filesystem itself.
type ConfigDocument struct {
	// Defaults carries fallback selection and limit values.
	Defaults DefaultsConfig

	// Providers maps instance names to new-style provider entries.
	Providers map[string]ProviderEntry

	// Legacy holds the old top-level sections, keyed by built-in kind.
	// They are migrated into Providers during resolution, at the lowest
	// precedence.
	Legacy map[ProviderKind]LegacyEntry
}

// ProviderEntry is one named provider section before resolution.
type ProviderEntry struct {
	// Kind is the declared backend type. May be empty for entries whose
	// name is itself a built-in kind name.
	Kind string

	// BaseURL overrides the kind's default API URL when non-empty.
	BaseURL string

	// Token is the optional credential.
	Token string
}

// LegacyEntry is an old-style top-level section ([github], [gitlab],
// [bitbucket]) which carries no kind because its section name is the kind.
type LegacyEntry struct {
	BaseURL string
	Token   string
}

// DefaultsConfig carries the [defaults] block of the config file.
type DefaultsConfig struct {
	// Providers is the default selection when the caller names none.
	Providers []string

	// Limit is the default per-provider result cap.
	Limit int
}

// Environment variable names recognised per built-in kind.
const (
	EnvSuffixToken = "_TOKEN"
	EnvSuffixURL   = "_URL"
)

// EnvTokenVar returns the environment variable overriding the token of the
// built-in instance of kind k, e.g. GITHUB_TOKEN.
func EnvTokenVar(k ProviderKind) string {
	return envPrefix(k) + EnvSuffixToken
}

// EnvURLVar returns the environment variable overriding the base URL of the
// built-in instance of kind k, e.g. GITLAB_URL.
func EnvURLVar(k ProviderKind) string {
	return envPrefix(k) + EnvSuffixURL
}

func envPrefix(k ProviderKind) string {
	switch k {
	case KindGitHub:
		return "GITHUB"
	case KindGitLab:
		return "GITLAB"
	case KindBitbucket:
		return "BITBUCKET"
	default:
		return ""
	}
}
