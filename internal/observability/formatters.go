// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/board-panel/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStartupProfile outputs a human-readable summary of the submitted profile.
func (p *Printer) PrintStartupProfile(profile *types.StartupProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Product:   %s\n", profile.ProductTechnology.ProductType))
	sb.WriteString(fmt.Sprintf("Users:     %d/month\n", profile.MarketingGrowth.MonthlyUsers))
	sb.WriteString(fmt.Sprintf("Team:      %d people\n", profile.TeamOrganization.TeamSize))
	sb.WriteString(fmt.Sprintf("Funding:   %s\n", profile.FinanceRunway.FundingStatus))

	if len(profile.CompetitionMarket.KnownCompetitors) > 0 {
		competitors := strings.Join(profile.CompetitionMarket.KnownCompetitors, ", ")
		if len(competitors) > 40 {
			competitors = competitors[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Rivals:    %s\n", competitors))
	}

	p.printBox("STARTUP PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysisResults outputs the per-category suggestion lists with a
// per-category health marker and the overall total.
func (p *Printer) PrintAnalysisResults(results *types.AnalysisResults) {
	if results == nil {
		return
	}

	labels := map[types.AdvisoryCategory]string{
		types.CategoryMarketing:      "Marketing",
		types.CategoryTechnical:      "Tech",
		types.CategoryOrganizational: "Org/HR",
		types.CategoryCompetitive:    "Competitive",
		types.CategoryFinancial:      "Finance",
	}

	var sb strings.Builder
	for _, category := range types.Categories() {
		suggestions := results.Get(category)
		marker := "✓"
		if len(suggestions) < 3 {
			marker = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s: %d suggestions\n", marker, labels[category], len(suggestions)))

		count := min(len(suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", suggestions[i]))
		}
		if len(suggestions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(suggestions)-maxItemsToShow))
		}
	}
	sb.WriteString(fmt.Sprintf("\nTotal suggestions: %d", results.Total()))

	p.printBox("ADVISORY RESULTS", sb.String())
}
