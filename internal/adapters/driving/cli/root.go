// Package cli is the cobra command tree of forgequery. It is a thin shell:
// it parses flags, builds the query, and hands it to the core search
// orchestrator through the driving ports.
package cli

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
	"github.com/forgequery/forgequery-cli/internal/core/ports/driving"
	"github.com/forgequery/forgequery-cli/internal/logger"
)

var (
	registry driving.Registry
	searcher driving.Searcher
)

var version = "dev"

var (
	searchProviders []string
	searchURL       string
	searchMine      bool
	searchOwner     string
	searchLimit     int
	searchJSON      bool

	listProviders bool
	verboseOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "forgequery [query]",
	Short: "Search repositories across GitHub, GitLab, and Bitbucket",
	Long: `Searches configured repository-hosting providers concurrently and
merges the results. Providers are configured in ~/.forgequery/config.toml
and via GITHUB_TOKEN, GITLAB_TOKEN, BITBUCKET_TOKEN (and matching _URL
variables); unconfigured built-in providers are searched anonymously.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.Flags().StringSliceVarP(&searchProviders, "provider", "p", nil,
		`provider(s) to search; repeatable, "all" expands to every configured provider`)
	rootCmd.Flags().StringVarP(&searchURL, "url", "u", "",
		"override the API URL of the selected providers")
	rootCmd.Flags().BoolVarP(&searchMine, "mine", "m", false,
		"only repositories you own")
	rootCmd.Flags().StringVarP(&searchOwner, "owner", "o", "",
		"only repositories owned by this user or namespace")
	rootCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0,
		"maximum results per provider (default 10, or from config)")
	rootCmd.Flags().BoolVar(&searchJSON, "json", false,
		"output results as JSON")
	rootCmd.Flags().BoolVar(&listProviders, "list-providers", false,
		"list configured providers and exit")
	rootCmd.PersistentFlags().BoolVar(&verboseOutput, "verbose", false,
		"verbose logging to stderr")
}

// SetServices wires the resolved registry and the search orchestrator into
// the command tree. Called once from main before Execute.
func SetServices(r driving.Registry, s driving.Searcher) {
	registry = r
	searcher = s
}

// SetVersion records the build version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verboseOutput)

	if registry == nil || searcher == nil {
		return errors.New("services not configured")
	}

	if listProviders {
		return runListProviders(cmd)
	}

	if len(args) == 0 {
		return errors.New("search query is required (or use --list-providers)")
	}
	if searchMine && searchOwner != "" {
		return errors.New("--mine and --owner cannot be used together")
	}

	query := domain.Query{
		Text:     args[0],
		MineOnly: searchMine,
		Owner:    searchOwner,
		Limit:    searchLimit,
		BaseURL:  searchURL,
	}

	results, err := searcher.Run(cmd.Context(), searchProviders, query)
	if err != nil {
		return err
	}

	if !searchJSON {
		for _, name := range sortedErrorNames(results.Errors) {
			cmd.PrintErrf("Warning: %s: %v\n", name, results.Errors[name])
		}
	}

	if searchJSON {
		if err := outputJSON(cmd, results); err != nil {
			return err
		}
	} else {
		outputTable(cmd, results)
	}

	if results.Failed() {
		return errors.New("all selected providers failed")
	}
	return nil
}

func runListProviders(cmd *cobra.Command) error {
	cmd.Println("Configured providers:")
	for _, name := range registry.Names() {
		cfg, ok := registry.Resolve(name)
		if !ok {
			continue
		}
		auth := ""
		if cfg.Authenticated() {
			auth = " (authenticated)"
		}
		cmd.Printf("  %s [%s] -> %s%s\n", cfg.Name, cfg.Kind, cfg.BaseURL, auth)
	}
	return nil
}

// sortedErrorNames orders the error mapping for stable warning output.
func sortedErrorNames(errs map[string]error) []string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
