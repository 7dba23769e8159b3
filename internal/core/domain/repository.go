package domain

// Repository is a normalised search hit from any provider.
// The JSON field names are part of the CLI's output contract.
type Repository struct {
	// Name is the short repository name.
	Name string `json:"name"`

	// Owner is the user or namespace the repository belongs to.
	Owner string `json:"owner"`

	// Private reports whether the repository is non-public.
	Private bool `json:"private"`

	// Provider is the configured instance name that produced this hit
	// (e.g. "work-gitlab"), not the generic backend kind. It disambiguates
	// results when several instances of the same kind are searched.
	Provider string `json:"provider"`

	// URL is the web URL of the repository.
	URL string `json:"url"`

	// FullName is the owner-qualified name (e.g. "golang/go").
	FullName string `json:"full_name"`

	// Description is the repository description, if any.
	Description string `json:"description,omitempty"`
}

// SearchResults is the merged outcome of one multi-provider search.
type SearchResults struct {
	// Repositories holds the merged records in selection order: results of
	// the first selected provider first, each provider's own order preserved.
	Repositories []Repository `json:"repositories"`

	// Total is the number of merged records after all filtering.
	Total int `json:"total"`

	// Errors maps a provider instance name to the error its search task
	// produced. Providers that succeeded have no entry.
	Errors map[string]error `json:"-"`

	// Succeeded is the number of providers that completed without error.
	// It distinguishes "every provider errored" from "providers succeeded
	// with zero hits".
	Succeeded int `json:"-"`
}

// Failed reports whether every selected provider failed.
func (r *SearchResults) Failed() bool {
	return r.Succeeded == 0 && len(r.Errors) > 0
}
