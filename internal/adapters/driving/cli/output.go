package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/forgequery/forgequery-cli/internal/core/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475A"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func outputJSON(cmd *cobra.Command, results *domain.SearchResults) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputTable(cmd *cobra.Command, results *domain.SearchResults) {
	if results.Total == 0 {
		cmd.Println("No repositories found.")
		return
	}
	cmd.Printf("Found %d repositories:\n", results.Total)

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		outputPlain(cmd, results)
		return
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 100
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Width(min(width, 140)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("REPOSITORY", "PROVIDER", "VISIBILITY", "DESCRIPTION")

	for _, repo := range results.Repositories {
		t.Row(repo.FullName, repo.Provider, visibility(repo), oneLine(repo.Description))
	}
	cmd.Println(t.Render())
}

// outputPlain is the pipe-friendly rendering, one tab separated row per
// repository.
func outputPlain(cmd *cobra.Command, results *domain.SearchResults) {
	for _, repo := range results.Repositories {
		cmd.Printf("%s\t%s\t%s\t%s\n", repo.FullName, repo.Provider, visibility(repo), repo.URL)
	}
}

func visibility(repo domain.Repository) string {
	if repo.Private {
		return "private"
	}
	return "public"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
