package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
)

type stubRegistry struct {
	configs map[string]domain.ProviderConfig
}

func (r *stubRegistry) Resolve(name string) (domain.ProviderConfig, bool) {
	cfg, ok := r.configs[name]
	return cfg, ok
}

func (r *stubRegistry) Names() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	return names
}

func (r *stubRegistry) DefaultSelection() []string { return r.Names() }
func (r *stubRegistry) DefaultLimit() int          { return 10 }

type stubSearcher struct {
	results   *domain.SearchResults
	err       error
	selection []string
	query     domain.Query
}

func (s *stubSearcher) Run(_ context.Context, selection []string, query domain.Query) (*domain.SearchResults, error) {
	s.selection = selection
	s.query = query
	return s.results, s.err
}

// execute resets the flag state, wires the stubs, and runs the command tree
// with captured output.
func execute(t *testing.T, reg *stubRegistry, search *stubSearcher, args ...string) (string, string, error) {
	t.Helper()

	searchProviders = nil
	searchURL = ""
	searchMine = false
	searchOwner = ""
	searchLimit = 0
	searchJSON = false
	listProviders = false
	verboseOutput = false

	SetServices(reg, search)
	t.Cleanup(func() { SetServices(nil, nil) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	// A nil slice would make cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func emptyResults() *domain.SearchResults {
	return &domain.SearchResults{
		Repositories: []domain.Repository{},
		Errors:       map[string]error{},
		Succeeded:    1,
	}
}

func TestRootCommand(t *testing.T) {
	t.Run("passes flags through to the searcher", func(t *testing.T) {
		search := &stubSearcher{results: emptyResults()}

		_, _, err := execute(t, &stubRegistry{}, search,
			"tetris", "-p", "github", "-p", "gitlab", "-n", "5",
			"-o", "acme", "-u", "https://ghe.corp.example")
		require.NoError(t, err)

		assert.Equal(t, []string{"github", "gitlab"}, search.selection)
		assert.Equal(t, "tetris", search.query.Text)
		assert.Equal(t, "acme", search.query.Owner)
		assert.Equal(t, 5, search.query.Limit)
		assert.Equal(t, "https://ghe.corp.example", search.query.BaseURL)
		assert.False(t, search.query.MineOnly)
	})

	t.Run("mine and owner are mutually exclusive", func(t *testing.T) {
		search := &stubSearcher{results: emptyResults()}

		_, _, err := execute(t, &stubRegistry{}, search, "q", "-m", "-o", "acme")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--mine and --owner")
	})

	t.Run("missing query is an error", func(t *testing.T) {
		_, _, err := execute(t, &stubRegistry{}, &stubSearcher{results: emptyResults()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})

	t.Run("json output carries the wire shape", func(t *testing.T) {
		search := &stubSearcher{results: &domain.SearchResults{
			Repositories: []domain.Repository{{
				Name:     "billing",
				Owner:    "acme",
				Provider: "github",
				FullName: "acme/billing",
				URL:      "https://github.example/acme/billing",
			}},
			Total:     1,
			Succeeded: 1,
			Errors:    map[string]error{},
		}}

		stdout, _, err := execute(t, &stubRegistry{}, search, "billing", "--json")
		require.NoError(t, err)

		var payload struct {
			Repositories []map[string]any `json:"repositories"`
			Total        int              `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
		assert.Equal(t, 1, payload.Total)
		require.Len(t, payload.Repositories, 1)
		assert.Equal(t, "acme/billing", payload.Repositories[0]["full_name"])
		assert.NotContains(t, payload.Repositories[0], "description")
	})

	t.Run("provider failures surface as warnings", func(t *testing.T) {
		search := &stubSearcher{results: &domain.SearchResults{
			Repositories: []domain.Repository{{FullName: "acme/billing", Provider: "github"}},
			Total:        1,
			Succeeded:    1,
			Errors:       map[string]error{"gitlab": errors.New("boom")},
		}}

		_, stderr, err := execute(t, &stubRegistry{}, search, "billing")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Warning: gitlab: boom")
	})

	t.Run("all providers failing is a command error", func(t *testing.T) {
		search := &stubSearcher{results: &domain.SearchResults{
			Repositories: []domain.Repository{},
			Errors:       map[string]error{"github": errors.New("boom")},
		}}

		_, _, err := execute(t, &stubRegistry{}, search, "billing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "all selected providers failed")
	})

	t.Run("no results prints a friendly line", func(t *testing.T) {
		stdout, _, err := execute(t, &stubRegistry{}, &stubSearcher{results: emptyResults()}, "nothing")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No repositories found.")
	})
}

func TestListProviders(t *testing.T) {
	reg := &stubRegistry{configs: map[string]domain.ProviderConfig{
		"github": {
			Name:    "github",
			Kind:    domain.KindGitHub,
			BaseURL: "https://api.github.com",
			Token:   "tok",
		},
	}}

	stdout, _, err := execute(t, reg, &stubSearcher{}, "--list-providers")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configured providers:")
	assert.Contains(t, stdout, "  github [github] -> https://api.github.com (authenticated)")
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	stdout, _, err := execute(t, &stubRegistry{}, &stubSearcher{}, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "forgequery version 1.2.3")
}
