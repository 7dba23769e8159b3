package services

import (
	"context"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driven"
	"github.com/forgequery/forgequery-cli/internal/providers/bitbucket"
	"github.com/forgequery/forgequery-cli/internal/providers/github"
	"github.com/forgequery/forgequery-cli/internal/providers/gitlab"
)

// Ensure ProviderFactory implements the interface.
var _ driven.ProviderFactory = (*ProviderFactory)(nil)

// ProviderFactory constructs provider instances for the built-in kinds.
// The switch is exhaustive over the closed kind set.
type ProviderFactory struct{}

// NewProviderFactory creates the factory for the built-in backends.
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// New builds a fresh provider for one resolved configuration.
func (f *ProviderFactory) New(ctx context.Context, cfg domain.ProviderConfig) (driven.Provider, error) {
	switch cfg.Kind {
	case domain.KindGitHub:
		return github.New(ctx, cfg)
	case domain.KindGitLab:
		return gitlab.New(cfg)
	case domain.KindBitbucket:
		return bitbucket.New(cfg), nil
	default:
		return nil, domain.NewConfigError(cfg.Name, "unknown provider kind %q", cfg.Kind)
	}
}
