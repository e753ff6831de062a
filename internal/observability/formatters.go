// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
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

// PrintRequestSummary outputs a human-readable summary of the page request
// about to be generated.
func (p *Printer) PrintRequestSummary(req *types.PageRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Mode:     %s\n", req.Mode()))
	if req.Service != "" {
		sb.WriteString(fmt.Sprintf("Service:  %s\n", req.Service))
	}
	if req.City != "" {
		location := req.City
		if req.State != "" {
			location = fmt.Sprintf("%s, %s", req.City, req.State)
		}
		sb.WriteString(fmt.Sprintf("City:     %s\n", location))
	}
	sb.WriteString(fmt.Sprintf("Business: %s\n", req.BusinessName))

	if req.HubLabel != "" || req.ServiceAreaLabel != "" {
		sb.WriteString("\n")
		if req.HubLabel != "" {
			sb.WriteString(fmt.Sprintf("Hub:      %s\n", req.HubLabel))
		}
		if req.ServiceAreaLabel != "" {
			sb.WriteString(fmt.Sprintf("Area:     %s\n", req.ServiceAreaLabel))
		}
	}
	if req.SiteURL != "" {
		sb.WriteString(fmt.Sprintf("Site:     %s\n", req.SiteURL))
	}

	p.printBox("PAGE REQUEST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPageSummary outputs the assembled page with its block breakdown.
func (p *Printer) PrintPageSummary(page *types.PageResponse) {
	if page == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", page.Title))
	sb.WriteString(fmt.Sprintf("Slug:     %s\n", page.Slug))

	meta := page.MetaDescription
	if len(meta) > 45 {
		meta = meta[:42] + "..."
	}
	sb.WriteString(fmt.Sprintf("Meta:     %s\n", meta))

	words := 0
	for _, text := range page.AllText() {
		words += len(strings.Fields(text))
	}
	sb.WriteString(fmt.Sprintf("Words:    %d\n", words))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Blocks (%d):\n", len(page.Blocks)))
	count := min(len(page.Blocks), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %s\n", blockLine(page.Blocks[i])))
	}
	if len(page.Blocks) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more blocks\n", len(page.Blocks)-maxItemsToShow))
	}

	p.printBox("GENERATED PAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// blockLine renders one content block as a single list entry.
func blockLine(block types.ContentBlock) string {
	var label, text string
	switch b := block.(type) {
	case types.Heading:
		label = fmt.Sprintf("h%d", b.Level)
		text = b.Text
	case types.Paragraph:
		label = "para"
		text = b.Text
	case types.FAQ:
		label = "faq"
		text = b.Question
	case types.NAP:
		label = "nap"
		text = b.BusinessName
	case types.CTA:
		label = "cta"
		text = b.Text
	default:
		label = string(block.BlockType())
	}
	if len(text) > 40 {
		text = text[:37] + "..."
	}
	return fmt.Sprintf("[%-4s] %s", label, text)
}

// PrintThresholds outputs the effective validation rule set.
func (p *Printer) PrintThresholds(t rules.Thresholds) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Min total words:    %d\n", t.MinTotalWords))
	sb.WriteString(fmt.Sprintf("Intro word window:  %d\n", t.FirstParagraphWindow))
	sb.WriteString(fmt.Sprintf("Paragraphs:         %d-%d\n", t.MinParagraphs, t.MaxParagraphs))
	sb.WriteString(fmt.Sprintf("FAQs:               %d-%d\n", t.MinFAQs, t.MaxFAQs))
	sb.WriteString(fmt.Sprintf("Vocabulary / para:  %d", t.MinVocabularyPerPara))

	p.printBox("VALIDATION THRESHOLDS", sb.String())
}

// PrintViolations outputs any validation violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations []types.Violation) {
	if len(violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations)))

	for i, v := range violations {
		detail := v.Detail
		if len(detail) > 45 {
			detail = detail[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", v.Code))
		sb.WriteString(fmt.Sprintf("  %s\n", detail))
		if i < len(violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION VIOLATIONS", sb.String())
}
