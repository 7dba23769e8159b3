// Package driving defines the inbound ports of the core, consumed by the CLI
// adapter.
package driving

import (
	"context"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
)

// SelectionAll is the sentinel selection value expanding to every
// configured provider instance.
const SelectionAll = "all"

// Searcher runs one multi-provider repository search.
type Searcher interface {
	// Run resolves the selection, dispatches one concurrent search per
	// selected instance, awaits them all, and merges the results in
	// selection order.
	//
	// An unknown name in the selection is a ConfigError, returned before
	// any search starts. Per-provider search failures never fail the run;
	// they are recorded in the result's error mapping.
	Run(ctx context.Context, selection []string, query domain.Query) (*domain.SearchResults, error)
}

// Registry exposes the resolved provider instances.
type Registry interface {
	// Resolve returns the resolved configuration for an instance name.
	// Unconfigured built-in names resolve to tokenless defaults.
	Resolve(name string) (domain.ProviderConfig, bool)

	// Names returns every resolvable instance name, sorted. The three
	// built-ins are always included.
	Names() []string

	// DefaultSelection returns the providers searched when the caller
	// names none.
	DefaultSelection() []string

	// DefaultLimit returns the per-provider result cap used when the
	// query carries none.
	DefaultLimit() int
}
