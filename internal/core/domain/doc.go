// Package domain contains the core entities of forgequery: the normalised
// repository record, the search query, the closed set of provider kinds, the
// resolved provider configuration, and the error taxonomy shared by all
// provider implementations.
//
// Types in this package have no dependencies on adapters or provider SDKs.
// A resolved ProviderConfig is immutable after construction and is safe to
// share by reference across concurrent search tasks.
package domain
