// Command forgequery searches GitHub, GitLab, and Bitbucket for
// repositories from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/forgequery/forgequery-cli/internal/adapters/driven/config/file"
	"github.com/forgequery/forgequery-cli/internal/adapters/driving/cli"
	"github.com/forgequery/forgequery-cli/internal/core/services"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path, err := file.DefaultPath()
	if err != nil {
		return fmt.Errorf("locating config: %w", err)
	}
	doc, err := file.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry, err := services.NewRegistry(doc, file.EnvSnapshot())
	if err != nil {
		return err
	}
	searcher := services.NewSearchService(registry, services.NewProviderFactory())

	cli.SetVersion(version)
	cli.SetServices(registry, searcher)
	return cli.Execute()
}
