package services

import (
	"context"
	"strings"
	"sync"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driven"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driving"
	"github.com/forgequery/forgequery-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.Searcher = (*SearchService)(nil)

// SearchService fans one query out to every selected provider instance and
// merges the answers.
//
// One task runs per selected instance; tasks share nothing and are all
// awaited regardless of individual failure. The merged order is the
// selection order, then each provider's own result order. Completion order
// never influences the output.
type SearchService struct {
	registry driving.Registry
	factory  driven.ProviderFactory
}

// NewSearchService creates a search orchestrator.
func NewSearchService(registry driving.Registry, factory driven.ProviderFactory) *SearchService {
	return &SearchService{
		registry: registry,
		factory:  factory,
	}
}

// Run executes one multi-provider search.
func (s *SearchService) Run(
	ctx context.Context, selection []string, query domain.Query,
) (*domain.SearchResults, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query.Text)

	if strings.TrimSpace(query.Text) == "" {
		return nil, domain.ErrQueryRequired
	}

	configs, err := s.resolveSelection(selection)
	if err != nil {
		return nil, err
	}

	query.Limit = query.EffectiveLimit(s.registry.DefaultLimit())
	logger.Debug("Providers: %d, limit per provider: %d", len(configs), query.Limit)

	// One slot per provider, written only by that provider's goroutine,
	// so the merge below reads selection order rather than completion
	// order.
	results := make([][]domain.Repository, len(configs))
	errs := make([]error, len(configs))

	var wg sync.WaitGroup
	for i, cfg := range configs {
		wg.Add(1)
		go func(i int, cfg domain.ProviderConfig) {
			defer wg.Done()
			results[i], errs[i] = s.searchOne(ctx, cfg, query)
		}(i, cfg)
	}
	wg.Wait()

	merged := &domain.SearchResults{
		Repositories: []domain.Repository{},
		Errors:       make(map[string]error),
	}
	for i, cfg := range configs {
		if errs[i] != nil {
			logger.Warn("%s: %v", cfg.Name, errs[i])
			merged.Errors[cfg.Name] = errs[i]
			continue
		}
		merged.Succeeded++
		merged.Repositories = append(merged.Repositories, results[i]...)
	}
	merged.Total = len(merged.Repositories)

	logger.Info("Merged %d result(s) from %d provider(s), %d failed",
		merged.Total, len(configs), len(merged.Errors))

	return merged, nil
}

// searchOne builds a fresh provider instance and runs its search. Instances
// are never reused across invocations.
func (s *SearchService) searchOne(
	ctx context.Context, cfg domain.ProviderConfig, query domain.Query,
) ([]domain.Repository, error) {
	if query.BaseURL != "" {
		cfg.BaseURL = query.BaseURL
	}
	provider, err := s.factory.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Searching %s (%s at %s)", cfg.Name, cfg.Kind, cfg.BaseURL)
	return provider.Search(ctx, query)
}

// resolveSelection expands the "all" sentinel and resolves every selected
// name, failing fast on names the registry does not know.
func (s *SearchService) resolveSelection(selection []string) ([]domain.ProviderConfig, error) {
	names := selection
	if len(names) == 0 {
		names = s.registry.DefaultSelection()
	}
	for _, name := range names {
		if strings.EqualFold(name, driving.SelectionAll) {
			names = s.registry.Names()
			break
		}
	}

	configs := make([]domain.ProviderConfig, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		cfg, ok := s.registry.Resolve(name)
		if !ok {
			return nil, domain.NewConfigError(name, "unknown provider")
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}
