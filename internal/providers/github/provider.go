// Package github implements the provider contract against the GitHub REST
// API (github.com or GitHub Enterprise).
//
// Search works unauthenticated for public repositories; a token raises rate
// limits and exposes private repositories owned by the caller. The mine
// filter needs the caller's login and therefore requires a token.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driven"
	"github.com/forgequery/forgequery-cli/internal/logger"
)

// DefaultTimeout is the HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Provider implements the contract.
var _ driven.Provider = (*Provider)(nil)

// Provider searches repositories through the go-github client.
type Provider struct {
	client *gh.Client
	cfg    domain.ProviderConfig
}

// New creates a GitHub provider for one resolved instance configuration.
// A non-default base URL is treated as a GitHub Enterprise deployment.
func New(ctx context.Context, cfg domain.ProviderConfig) (*Provider, error) {
	hc := &http.Client{Timeout: DefaultTimeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = DefaultTimeout
	}

	client := gh.NewClient(hc)
	if cfg.BaseURL != "" && cfg.BaseURL != domain.KindGitHub.DefaultBaseURL() {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%s: base URL: %w", cfg.Name, err)
		}
	}

	return &Provider{client: client, cfg: cfg}, nil
}

// Search performs one single-page repository search.
func (p *Provider) Search(ctx context.Context, query domain.Query) ([]domain.Repository, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, domain.ErrQueryRequired
	}

	searchQuery := text
	if query.Owner != "" {
		searchQuery += " user:" + query.Owner
	}
	if query.MineOnly {
		if !p.IsAuthenticated() {
			return nil, fmt.Errorf("%s: mine filter: %w", p.cfg.Name, domain.ErrAuthRequired)
		}
		login, err := p.login(ctx)
		if err != nil {
			return nil, err
		}
		searchQuery += " user:" + login
	}

	logger.Debug("%s: search %q", p.cfg.Name, searchQuery)

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{PerPage: query.Limit},
	}
	result, _, err := p.client.Search.Repositories(ctx, searchQuery, opts)
	if err != nil {
		return nil, p.wrapError(err)
	}

	repos := make([]domain.Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		repos = append(repos, domain.Repository{
			Name:        r.GetName(),
			Owner:       r.GetOwner().GetLogin(),
			Private:     r.GetPrivate(),
			Provider:    p.cfg.Name,
			URL:         r.GetHTMLURL(),
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
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

// login fetches the authenticated user's login for the mine filter.
func (p *Provider) login(ctx context.Context) (string, error) {
	user, _, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return "", p.wrapError(err)
	}
	return user.GetLogin(), nil
}

// wrapError converts go-github errors into the domain taxonomy.
func (p *Provider) wrapError(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		return &domain.APIError{
			Provider:   p.cfg.Name,
			StatusCode: status,
			Message:    ghErr.Message,
		}
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &domain.APIError{
			Provider:   p.cfg.Name,
			StatusCode: http.StatusForbidden,
			Message:    "rate limit exceeded",
		}
	}

	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &synErr) || errors.As(err, &typeErr) {
		return &domain.DecodeError{Provider: p.cfg.Name, Err: err}
	}

	return &domain.NetworkError{Provider: p.cfg.Name, Err: err}
}
