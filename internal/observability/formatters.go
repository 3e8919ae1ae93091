package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/mandate-configurator/internal/catalog"
	"github.com/jonathan/mandate-configurator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 12
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

	for _, line := range strings.Split(content, "\n") {
		for _, part := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, part)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap breaks line into chunks of at most width runes at spaces where possible.
func wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}
	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// PrintValidation outputs the verdict and its messages.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(v types.LocalizedValidation) {
	if len(v.Messages) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ COMBINATION OK")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	icon := "⚠"
	if v.Severity == types.SeverityBlocked {
		icon = "⛔"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Severity: %s\n", v.Severity))
	for _, m := range v.Messages {
		sb.WriteString(fmt.Sprintf("\n%s %s", icon, m))
	}
	p.printBox("VALIDATION", sb.String())
}

// PrintPrice outputs the price breakdown.
func (p *Printer) PrintPrice(b types.PriceBreakdown, currency string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Factor:    %.4g\n", b.PriceFactor))
	sb.WriteString(fmt.Sprintf("Day rate:  %.2f %s\n", b.DayRate, currency))
	sb.WriteString(fmt.Sprintf("Days:      %d\n", b.Days))
	sb.WriteString(fmt.Sprintf("Net:       %.2f %s\n", b.Net, currency))
	sb.WriteString(fmt.Sprintf("VAT:       %.2f %s\n", b.Tax, currency))
	sb.WriteString(fmt.Sprintf("Gross:     %.2f %s", b.Gross, currency))
	p.printBox("PRICE", sb.String())
}

// PrintSection outputs a composed contract section.
func (p *Printer) PrintSection(s types.Section) {
	p.printBox(s.Title, strings.Join(s.Paragraphs, "\n\n"))
}

// PrintRequirements outputs the requirement list of one role.
func (p *Printer) PrintRequirements(label string, items []catalog.LocalizedRequirement) {
	if len(items) == 0 {
		p.printBox(label, "(no requirements)")
		return
	}

	var sb strings.Builder
	var group catalog.Group
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		it := items[i]
		if it.Group != group {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("[%s]\n", it.Group))
			group = it.Group
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", it.Text))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	p.printBox(label, strings.TrimSuffix(sb.String(), "\n"))
}
