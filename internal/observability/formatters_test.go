package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

func TestPrintRequestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	req := &types.PageRequest{
		Service:      "Gutter Repair",
		City:         "Tulsa",
		State:        "OK",
		BusinessName: "Acme Roofing",
		SiteURL:      "https://acmeroofing.example",
	}

	p.PrintRequestSummary(req)
	output := buf.String()

	assert.Contains(t, output, "PAGE REQUEST")
	assert.Contains(t, output, "service_city")
	assert.Contains(t, output, "Gutter Repair")
	assert.Contains(t, output, "Tulsa, OK")
	assert.Contains(t, output, "Acme Roofing")
	assert.Contains(t, output, "https://acmeroofing.example")
}

func TestPrintRequestSummary_HubFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	req := &types.PageRequest{
		PageMode:         types.ModeServiceHub,
		BusinessName:     "Acme Roofing",
		HubLabel:         "Roof Repair & Maintenance",
		ServiceAreaLabel: "Greater Tulsa",
	}

	p.PrintRequestSummary(req)
	output := buf.String()

	assert.Contains(t, output, "service_hub")
	assert.Contains(t, output, "Roof Repair & Maintenance")
	assert.Contains(t, output, "Greater Tulsa")
}

func TestPrintRequestSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequestSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintPageSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	page := &types.PageResponse{
		Title:           "Gutter Repair in Tulsa, OK | Acme Roofing",
		MetaDescription: "Fast gutter repair in Tulsa from Acme Roofing.",
		Slug:            "gutter-repair-tulsa",
		Blocks: []types.ContentBlock{
			types.Heading{Level: 1, Text: "Gutter Repair in Tulsa, OK"},
			types.Paragraph{Text: "Acme Roofing repairs sagging gutters."},
			types.FAQ{Question: "How fast can you come out?", Answer: "Usually same week."},
			types.CTA{Text: "Call today", Phone: "555-0100"},
		},
	}

	p.PrintPageSummary(page)
	output := buf.String()

	assert.Contains(t, output, "GENERATED PAGE")
	assert.Contains(t, output, "gutter-repair-tulsa")
	assert.Contains(t, output, "Blocks (4)")
	assert.Contains(t, output, "[h1  ]")
	assert.Contains(t, output, "[para]")
	assert.Contains(t, output, "[faq ]")
	assert.Contains(t, output, "How fast can you come out?")
	assert.Contains(t, output, "Call today")
}

func TestPrintPageSummary_TruncatesLongBlockList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	page := &types.PageResponse{Title: "T", Slug: "t"}
	for i := 0; i < 8; i++ {
		page.Blocks = append(page.Blocks, types.Paragraph{Text: "body text"})
	}

	p.PrintPageSummary(page)
	output := buf.String()

	assert.Contains(t, output, "Blocks (8)")
	assert.Contains(t, output, "... and 3 more blocks")
}

func TestPrintPageSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPageSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintThresholds(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintThresholds(rules.DefaultThresholds())
	output := buf.String()

	assert.Contains(t, output, "VALIDATION THRESHOLDS")
	assert.Contains(t, output, "300")
	assert.Contains(t, output, "3-6")
	assert.Contains(t, output, "3-5")
}

func TestPrintViolations_WithViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	violations := []types.Violation{
		types.NewViolation(types.ViolationLowWordCount, "page has 120 words, need 300"),
		types.NewViolation(types.ViolationForbiddenPhrase, "found forbidden phrase %q", "top-rated"),
	}

	p.PrintViolations(violations)
	output := buf.String()

	assert.Contains(t, output, "VALIDATION VIOLATIONS")
	assert.Contains(t, output, "Found 2 violations")
	assert.Contains(t, output, "low_word_count")
	assert.Contains(t, output, "page has 120 words, need 300")
	assert.Contains(t, output, "forbidden_phrase")
}

func TestPrintViolations_NoViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(nil)
	output := buf.String()

	assert.Contains(t, output, "NO VIOLATIONS FOUND")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	req := &types.PageRequest{
		Service:      "Emergency Storm Damage Roof And Gutter Restoration Services",
		City:         "Broken Arrow",
		State:        "OK",
		BusinessName: "A Very Long Business Name That Should Be Truncated To Fit",
	}

	p.PrintRequestSummary(req)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
