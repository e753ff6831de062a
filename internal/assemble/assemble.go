// Package assemble converts schema-valid LLM payloads into typed pages.
// Each page mode has its own assembler; all three derive the slug, title and
// H1 text from the request, never from LLM output, and strip HTML from every
// LLM-provided text field before the page reaches validation or storage.
package assemble

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/parkerjr2/seogen/internal/slug"
	"github.com/parkerjr2/seogen/internal/types"
)

const metaMaxLen = 160

// PageSection is one heading+paragraph body section of a service+city
// payload.
type PageSection struct {
	Heading   string `json:"heading"`
	Paragraph string `json:"paragraph"`
}

// FAQItem is one question+answer pair of an LLM payload.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ServiceCityPayload is the decoded LLM payload for a service+city page.
// Title, H1 and slug never appear here; the model only writes the meta
// description, body sections, FAQs and CTA text.
type ServiceCityPayload struct {
	MetaDescription string        `json:"meta_description"`
	Sections        []PageSection `json:"sections"`
	FAQs            []FAQItem     `json:"faqs"`
	CTAText         string        `json:"cta_text"`
}

// DecodeServiceCity decodes a service+city payload from raw LLM JSON.
func DecodeServiceCity(raw []byte) (ServiceCityPayload, error) {
	var p ServiceCityPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return ServiceCityPayload{}, fmt.Errorf("failed to decode service city payload: %w", err)
	}
	return p, nil
}

// ServiceCity builds the typed page for a service+city request. Block order
// is a contract: H1 first, body sections, grouped FAQs, NAP, CTA last.
func ServiceCity(req types.PageRequest, payload ServiceCityPayload) *types.PageResponse {
	h1 := serviceCityH1(req)
	title := h1
	if req.BusinessName != "" {
		title += " | " + req.BusinessName
	}

	blocks := []types.ContentBlock{types.Heading{Level: 1, Text: h1}}
	for _, s := range payload.Sections {
		if heading := StripHTML(s.Heading); heading != "" {
			blocks = append(blocks, types.Heading{Level: 2, Text: heading})
		}
		if text := StripHTML(s.Paragraph); text != "" {
			blocks = append(blocks, types.Paragraph{Text: text})
		}
	}
	for _, f := range payload.FAQs {
		blocks = append(blocks, types.FAQ{
			Question: StripHTML(f.Question),
			Answer:   StripHTML(f.Answer),
		})
	}
	if req.BusinessName != "" || req.Phone != "" || req.Address != "" {
		blocks = append(blocks, types.NAP{
			BusinessName: req.BusinessName,
			Phone:        req.Phone,
			Email:        req.Email,
			Address:      req.Address,
		})
	}
	blocks = append(blocks, types.CTA{Text: StripHTML(payload.CTAText), Phone: req.Phone})

	return &types.PageResponse{
		Title:           title,
		MetaDescription: StripHTML(payload.MetaDescription),
		Slug:            slug.Make(req.Service, req.City),
		Blocks:          blocks,
	}
}

func serviceCityH1(req types.PageRequest) string {
	h1 := fmt.Sprintf("%s in %s", req.Service, req.City)
	if req.State != "" {
		h1 += ", " + req.State
	}
	return h1
}

// titleWords uppercases the first letter of each word, leaving the rest of
// the word alone ("garage door" -> "Garage Door", "HVAC" stays "HVAC").
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// truncateMeta caps a meta description at 160 bytes without splitting a rune.
func truncateMeta(s string) string {
	if len(s) <= metaMaxLen {
		return s
	}
	cut := metaMaxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
