package domain

import "strings"

// ProviderKind identifies one of the built-in backend types.
type ProviderKind string

const (
	// KindGitHub is the GitHub / GitHub Enterprise backend.
	KindGitHub ProviderKind = "github"
	// KindGitLab is the GitLab backend (gitlab.com or self-hosted).
	KindGitLab ProviderKind = "gitlab"
	// KindBitbucket is the Bitbucket Cloud backend.
	KindBitbucket ProviderKind = "bitbucket"
)

// Kinds returns the closed set of built-in provider kinds, in canonical order.
func Kinds() []ProviderKind {
	return []ProviderKind{KindGitHub, KindGitLab, KindBitbucket}
}

// Valid reports whether k is one of the built-in kinds.
func (k ProviderKind) Valid() bool {
	switch k {
	case KindGitHub, KindGitLab, KindBitbucket:
		return true
	default:
		return false
	}
}

// DefaultBaseURL returns the public API URL for the kind.
func (k ProviderKind) DefaultBaseURL() string {
	switch k {
	case KindGitHub:
		return "https://api.github.com"
	case KindGitLab:
		return "https://gitlab.com"
	case KindBitbucket:
		return "https://api.bitbucket.org/2.0"
	default:
		return ""
	}
}

// KindFromName infers a provider kind from an instance name. Only the three
// built-in names resolve; anything else (e.g. "work-gitlab") returns false
// and requires an explicit kind in configuration.
func KindFromName(name string) (ProviderKind, bool) {
	k := ProviderKind(strings.ToLower(name))
	if k.Valid() {
		return k, true
	}
	return "", false
}

// ProviderConfig is a fully resolved provider instance configuration.
// It is built once by the registry and never mutated afterwards.
type ProviderConfig struct {
	// Name is the unique instance name (e.g. "github", "work-gitlab").
	Name string

	// Kind is the backend type the instance talks to.
	Kind ProviderKind

	// BaseURL is the API base URL, already defaulted for the kind.
	BaseURL string

	// Token is the optional pre-obtained credential. Empty means
	// unauthenticated access.
	Token string
}

// Authenticated reports whether a non-empty credential is configured.
func (c ProviderConfig) Authenticated() bool {
	return c.Token != ""
}
