package assemble

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/parkerjr2/seogen/internal/types"
)

// StripHTML removes HTML markup from an LLM-provided text field, returning
// the trimmed text content. Text without angle brackets passes through
// untouched; unparsable input is returned as-is rather than dropped.
func StripHTML(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func sanitizeBlocks(blocks []types.ContentBlock) []types.ContentBlock {
	out := make([]types.ContentBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, sanitizeBlock(b))
	}
	return out
}

func sanitizeBlock(b types.ContentBlock) types.ContentBlock {
	switch v := b.(type) {
	case types.Heading:
		v.Text = StripHTML(v.Text)
		return v
	case types.Paragraph:
		v.Text = StripHTML(v.Text)
		return v
	case types.FAQ:
		v.Question = StripHTML(v.Question)
		v.Answer = StripHTML(v.Answer)
		return v
	case types.CTA:
		v.Text = StripHTML(v.Text)
		return v
	default:
		return b
	}
}
