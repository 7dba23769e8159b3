// Package driven defines the outbound ports of the core: the contract every
// repository-hosting backend implements, and the factory that builds backend
// instances from resolved configuration.
package driven

import (
	"context"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
)

// Provider searches one repository-hosting backend.
// Each backend kind (github, gitlab, bitbucket) implements this interface.
type Provider interface {
	// Search performs one best-effort, single-page search against the
	// backend. Implementations apply the query's mine/owner filters
	// (server-side where the API supports it, client-side otherwise) and
	// cap results at the query limit. Backends that cannot search under
	// the configured credentials fail with domain.ErrAuthRequired before
	// issuing any network call.
	Search(ctx context.Context, query domain.Query) ([]domain.Repository, error)

	// DisplayName returns the configured instance name used to tag
	// results, so that multiple instances of one kind stay apart.
	DisplayName() string

	// IsAuthenticated reports whether a non-empty credential was
	// configured for this instance.
	IsAuthenticated() bool
}

// ProviderFactory builds a Provider for a resolved configuration.
// Instances are constructed per search invocation and discarded afterwards;
// no state is shared between invocations.
type ProviderFactory interface {
	New(ctx context.Context, cfg domain.ProviderConfig) (Provider, error)
}
