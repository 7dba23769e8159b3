// Package gitlab implements the provider contract against the GitLab API
// (gitlab.com or self-hosted).
//
// Project search works unauthenticated for public projects. The mine filter
// maps to the API's owned flag, which the server rejects without a token;
// the owner filter is applied client-side on the project namespace because
// the search endpoint has no owner scoping.
package gitlab

import (
	"context"
	"errors"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driven"
	"github.com/forgequery/forgequery-cli/internal/logger"
)

// DefaultTimeout is the HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Provider implements the contract.
var _ driven.Provider = (*Provider)(nil)

// Provider searches projects through the GitLab client.
type Provider struct {
	client *gitlab.Client
	cfg    domain.ProviderConfig
}

// New creates a GitLab provider for one resolved instance configuration.
func New(cfg domain.ProviderConfig) (*Provider, error) {
	opts := []gitlab.ClientOptionFunc{}
	if cfg.BaseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(cfg.BaseURL))
	}

	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, &domain.NetworkError{Provider: cfg.Name, Err: err}
	}
	return &Provider{client: client, cfg: cfg}, nil
}

// Search performs one single-page project search.
func (p *Provider) Search(ctx context.Context, query domain.Query) ([]domain.Repository, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, domain.ErrQueryRequired
	}

	opt := &gitlab.ListProjectsOptions{
		ListOptions: gitlab.ListOptions{PerPage: int64(query.Limit)},
		Search:      gitlab.Ptr(text),
	}
	if query.MineOnly {
		opt.Owned = gitlab.Ptr(true)
	}

	logger.Debug("%s: search %q (owned=%t)", p.cfg.Name, text, query.MineOnly)

	projects, _, err := p.client.Projects.ListProjects(opt, gitlab.WithContext(ctx))
	if err != nil {
		return nil, p.wrapError(err)
	}

	repos := make([]domain.Repository, 0, len(projects))
	for _, project := range projects {
		owner := ""
		if project.Namespace != nil {
			owner = project.Namespace.Name
		}
		if query.Owner != "" && !strings.EqualFold(owner, query.Owner) {
			continue
		}
		repos = append(repos, domain.Repository{
			Name:        project.Name,
			Owner:       owner,
			Private:     project.Visibility != gitlab.PublicVisibility,
			Provider:    p.cfg.Name,
			URL:         project.WebURL,
			FullName:    project.PathWithNamespace,
			Description: project.Description,
		})
		if query.Limit > 0 && len(repos) >= query.Limit {
			break
		}
	}
	return repos, nil
}

// DisplayName returns the configured instance name.
func (p *Provider) DisplayName() string { return p.cfg.Name }

// IsAuthenticated reports whether a token was configured.
func (p *Provider) IsAuthenticated() bool { return p.cfg.Authenticated() }

// wrapError converts client errors into the domain taxonomy.
func (p *Provider) wrapError(err error) error {
	var glErr *gitlab.ErrorResponse
	if errors.As(err, &glErr) {
		status := 0
		if glErr.Response != nil {
			status = glErr.Response.StatusCode
		}
		return &domain.APIError{
			Provider:   p.cfg.Name,
			StatusCode: status,
			Message:    glErr.Message,
		}
	}
	return &domain.NetworkError{Provider: p.cfg.Name, Err: err}
}
