package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PageMode selects which kind of page a request generates.
type PageMode string

const (
	// ModeServiceCity is a single service-in-city landing page.
	ModeServiceCity PageMode = "service_city"
	// ModeServiceHub is a hub page for one service group across an area.
	ModeServiceHub PageMode = "service_hub"
	// ModeCityHub is a hub page for one city across all services.
	ModeCityHub PageMode = "city_hub"
)

// PageRequest is the immutable input for one page generation. It is built by
// the caller (API request body or bulk job item row) and never mutated inside
// the generation flow.
type PageRequest struct {
	Service      string   `json:"service"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	BusinessName string   `json:"business_name"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Address      string   `json:"address"`
	Vertical     string   `json:"vertical,omitempty"`
	PageMode     PageMode `json:"page_mode"`

	// Hub mode fields. Empty for service-city pages.
	HubKey           string `json:"hub_key,omitempty"`
	HubLabel         string `json:"hub_label,omitempty"`
	HubSlug          string `json:"hub_slug,omitempty"`
	CitySlug         string `json:"city_slug,omitempty"`
	ServiceAreaLabel string `json:"service_area_label,omitempty"`
	CTAText          string `json:"cta_text,omitempty"`

	// SiteURL enables site context enrichment when set.
	SiteURL string `json:"site_url,omitempty"`
}

// Mode returns the request's page mode, defaulting to service-city.
func (r PageRequest) Mode() PageMode {
	if r.PageMode == "" {
		return ModeServiceCity
	}
	return r.PageMode
}

// CanonicalKey returns the lowercased service|city|state dedup key stored
// with bulk items for external callers. The system itself never dedups on it.
func (r PageRequest) CanonicalKey() string {
	parts := []string{r.Service, r.City, r.State}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

// PageResponse is a fully assembled page. Slug, Title and the H1 text are
// always derived from the request, never taken from LLM output.
type PageResponse struct {
	Title           string         `json:"title"`
	MetaDescription string         `json:"meta_description"`
	Slug            string         `json:"slug"`
	Blocks          []ContentBlock `json:"blocks"`
}

// UnmarshalJSON decodes the blocks through the tagged-union decoder.
func (p *PageResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title           string            `json:"title"`
		MetaDescription string            `json:"meta_description"`
		Slug            string            `json:"slug"`
		Blocks          []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode page response: %w", err)
	}

	blocks := make([]ContentBlock, 0, len(raw.Blocks))
	for i, msg := range raw.Blocks {
		block, err := UnmarshalBlock(msg)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}

	p.Title = raw.Title
	p.MetaDescription = raw.MetaDescription
	p.Slug = raw.Slug
	p.Blocks = blocks
	return nil
}

// CountBlocks returns how many blocks of the given type the page contains.
func (p *PageResponse) CountBlocks(t BlockType) int {
	n := 0
	for _, b := range p.Blocks {
		if b.BlockType() == t {
			n++
		}
	}
	return n
}

// Paragraphs returns the paragraph blocks in page order.
func (p *PageResponse) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, b := range p.Blocks {
		if para, ok := b.(Paragraph); ok {
			out = append(out, para)
		}
	}
	return out
}

// FAQs returns the FAQ blocks in page order.
func (p *PageResponse) FAQs() []FAQ {
	var out []FAQ
	for _, b := range p.Blocks {
		if faq, ok := b.(FAQ); ok {
			out = append(out, faq)
		}
	}
	return out
}

// Headings returns heading blocks at the given level, in page order.
func (p *PageResponse) Headings(level int) []Heading {
	var out []Heading
	for _, b := range p.Blocks {
		if h, ok := b.(Heading); ok && h.Level == level {
			out = append(out, h)
		}
	}
	return out
}

// AllText returns the title, meta description and every block text field,
// in page order. This is the surface forbidden-phrase checks scan.
func (p *PageResponse) AllText() []string {
	out := []string{p.Title, p.MetaDescription}
	for _, b := range p.Blocks {
		out = append(out, b.TextContent()...)
	}
	return out
}
