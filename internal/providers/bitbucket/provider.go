// Package bitbucket implements the provider contract against the Bitbucket
// Cloud 2.0 REST API.
//
// Bitbucket rejects unauthenticated repository-wide search, so an instance
// without a token fails fast with domain.ErrAuthRequired unless the query is
// restricted to the caller's own repositories. With a token, the search is
// scoped to the authenticated user's workspace.
package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driven"
	"github.com/forgequery/forgequery-cli/internal/logger"
)

// DefaultTimeout is the HTTP request timeout.
const DefaultTimeout = 30 * time.Second

const userAgent = "forgequery"

// Ensure Provider implements the contract.
var _ driven.Provider = (*Provider)(nil)

// Provider searches repositories over plain HTTP.
type Provider struct {
	client *http.Client
	cfg    domain.ProviderConfig
}

// New creates a Bitbucket provider for one resolved instance configuration.
func New(cfg domain.ProviderConfig) *Provider {
	return &Provider{
		client: &http.Client{Timeout: DefaultTimeout},
		cfg:    cfg,
	}
}

// searchResponse is the subset of the repository list payload we consume.
// Extra fields are ignored.
type searchResponse struct {
	Values []apiRepository `json:"values"`
}

type apiRepository struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
	Links       struct {
		HTML struct {
			Href string `json:"href"`
		} `json:"html"`
	} `json:"links"`
	Owner struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

type apiUser struct {
	Username string `json:"username"`
}

// Search performs one single-page repository search.
func (p *Provider) Search(ctx context.Context, query domain.Query) ([]domain.Repository, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, domain.ErrQueryRequired
	}

	// Repository-wide search needs credentials; only a search restricted
	// to the caller's own repositories may proceed without them.
	if !query.MineOnly && !p.IsAuthenticated() {
		return nil, fmt.Errorf("%s: searching all repositories: %w", p.cfg.Name, domain.ErrAuthRequired)
	}

	scope := ""
	switch {
	case query.Owner != "":
		scope = query.Owner
	case p.IsAuthenticated():
		username, err := p.username(ctx)
		if err != nil {
			return nil, err
		}
		scope = username
	}

	endpoint := p.cfg.BaseURL + "/repositories"
	if scope != "" {
		endpoint += "/" + url.PathEscape(scope)
	}
	endpoint += "?q=" + url.QueryEscape(`name~"`+text+`"`) +
		"&pagelen=" + strconv.Itoa(query.Limit)

	logger.Debug("%s: GET %s", p.cfg.Name, endpoint)

	var payload searchResponse
	if err := p.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	repos := make([]domain.Repository, 0, len(payload.Values))
	for _, value := range payload.Values {
		repos = append(repos, domain.Repository{
			Name:        value.Name,
			Owner:       value.Owner.DisplayName,
			Private:     value.IsPrivate,
			Provider:    p.cfg.Name,
			URL:         value.Links.HTML.Href,
			FullName:    value.FullName,
			Description: value.Description,
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

// username fetches the authenticated user for workspace scoping.
func (p *Provider) username(ctx context.Context) (string, error) {
	var user apiUser
	if err := p.get(ctx, p.cfg.BaseURL+"/user", &user); err != nil {
		return "", err
	}
	return user.Username, nil
}

// get issues one GET request and decodes the JSON response into out.
func (p *Provider) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &domain.NetworkError{Provider: p.cfg.Name, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if p.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return &domain.NetworkError{Provider: p.cfg.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIError{
			Provider:   p.cfg.Name,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.DecodeError{Provider: p.cfg.Name, Err: err}
	}
	return nil
}

// errorMessage extracts a short message from an error response body.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil || len(data) == 0 {
		return "request failed"
	}

	// Bitbucket error bodies carry {"error": {"message": "..."}}.
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(data))
}
