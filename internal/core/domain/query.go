package domain

// Query is an immutable search request, constructed once per invocation.
type Query struct {
	// Text is the free-text search query.
	Text string

	// MineOnly restricts results to repositories owned by the
	// authenticated caller.
	MineOnly bool

	// Owner restricts results to repositories owned by the given user or
	// namespace. Mutually exclusive with MineOnly.
	Owner string

	// Limit caps the number of results per provider. Zero means the
	// provider default.
	Limit int

	// BaseURL, when non-empty, overrides the API URL of every selected
	// provider for this invocation only.
	BaseURL string
}

// EffectiveLimit returns the per-provider result cap, falling back to def
// when the query carries no explicit limit.
func (q Query) EffectiveLimit(def int) int {
	if q.Limit > 0 {
		return q.Limit
	}
	return def
}
