// Package types defines the shared data structures for page generation:
// page requests and responses, the content block variants, and validation
// violations.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BlockType identifies a content block variant.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockFAQ       BlockType = "faq"
	BlockNAP       BlockType = "nap"
	BlockCTA       BlockType = "cta"
)

// ContentBlock is one typed unit of page content. The five variants below
// are the only implementations. TextContent exposes every human-readable
// field so validation and word counting never inspect concrete types.
type ContentBlock interface {
	BlockType() BlockType
	TextContent() []string
}

// Heading is a section heading. Level 1 is the page H1.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

func (h Heading) BlockType() BlockType  { return BlockHeading }
func (h Heading) TextContent() []string { return []string{h.Text} }

// Paragraph is a body text block.
type Paragraph struct {
	Text string `json:"text"`
}

func (p Paragraph) BlockType() BlockType  { return BlockParagraph }
func (p Paragraph) TextContent() []string { return []string{p.Text} }

// FAQ is a question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f FAQ) BlockType() BlockType  { return BlockFAQ }
func (f FAQ) TextContent() []string { return []string{f.Question, f.Answer} }

// NAP is the structured business identity block (name/address/phone).
type NAP struct {
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

func (n NAP) BlockType() BlockType { return BlockNAP }
func (n NAP) TextContent() []string {
	return []string{n.BusinessName, n.Phone, n.Email, n.Address}
}

// CTA is the call-to-action block.
type CTA struct {
	Text  string `json:"text"`
	Phone string `json:"phone"`
}

func (c CTA) BlockType() BlockType  { return BlockCTA }
func (c CTA) TextContent() []string { return []string{c.Text} }

// MarshalJSON adds the type discriminator to the wire form.
func (h Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockHeading, alias(h)})
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockParagraph, alias(p)})
}

func (f FAQ) MarshalJSON() ([]byte, error) {
	type alias FAQ
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockFAQ, alias(f)})
}

func (n NAP) MarshalJSON() ([]byte, error) {
	type alias NAP
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockNAP, alias(n)})
}

func (c CTA) MarshalJSON() ([]byte, error) {
	type alias CTA
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockCTA, alias(c)})
}

// UnmarshalBlock decodes a single block from its wire form. Unknown type
// tags and fields belonging to a different variant are rejected, so loosely
// shaped LLM output fails here instead of leaking deeper into the system.
func UnmarshalBlock(data []byte) (ContentBlock, error) {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode block: %w", err)
	}

	switch probe.Type {
	case BlockHeading:
		var b struct {
			Type BlockType `json:"type"`
			Heading
		}
		if err := strictUnmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("invalid heading block: %w", err)
		}
		return b.Heading, nil
	case BlockParagraph:
		var b struct {
			Type BlockType `json:"type"`
			Paragraph
		}
		if err := strictUnmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("invalid paragraph block: %w", err)
		}
		return b.Paragraph, nil
	case BlockFAQ:
		var b struct {
			Type BlockType `json:"type"`
			FAQ
		}
		if err := strictUnmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("invalid faq block: %w", err)
		}
		return b.FAQ, nil
	case BlockNAP:
		var b struct {
			Type BlockType `json:"type"`
			NAP
		}
		if err := strictUnmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("invalid nap block: %w", err)
		}
		return b.NAP, nil
	case BlockCTA:
		var b struct {
			Type BlockType `json:"type"`
			CTA
		}
		if err := strictUnmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("invalid cta block: %w", err)
		}
		return b.CTA, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", probe.Type)
	}
}

// strictUnmarshal decodes JSON rejecting any field the target does not declare.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
