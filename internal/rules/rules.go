// Package rules holds the static content rules that pages are generated and
// validated against: validation thresholds, block count tables, trade
// vocabulary, forbidden phrases, and hub profiles. Everything here is lookup
// data; the checks themselves live in the validation package.
package rules

import (
	"fmt"

	"github.com/parkerjr2/seogen/internal/types"
)

// Thresholds are the tunable numeric limits the validator enforces.
// All fields are optional in config; zero values are filled by
// MergeWithDefaults before use.
type Thresholds struct {
	MinTotalWords        int `json:"min_total_words,omitempty"`        // Minimum words across paragraph + FAQ answer text
	FirstParagraphWindow int `json:"first_paragraph_window,omitempty"` // Word window for the service+city intro check
	MinParagraphs        int `json:"min_paragraphs,omitempty"`         // Lower bound on paragraph blocks
	MaxParagraphs        int `json:"max_paragraphs,omitempty"`         // Upper bound on paragraph blocks
	MinFAQs              int `json:"min_faqs,omitempty"`               // Lower bound on FAQ blocks
	MaxFAQs              int `json:"max_faqs,omitempty"`               // Upper bound on FAQ blocks
	MinVocabularyPerPara int `json:"min_vocabulary_per_para,omitempty"`
}

// DefaultThresholds returns the documented default rule set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTotalWords:        300,
		FirstParagraphWindow: 100,
		MinParagraphs:        3,
		MaxParagraphs:        6,
		MinFAQs:              3,
		MaxFAQs:              5,
		MinVocabularyPerPara: 1,
	}
}

// MergeWithDefaults returns a copy of t with zero fields filled from defaults.
func (t Thresholds) MergeWithDefaults(defaults Thresholds) Thresholds {
	result := t
	if result.MinTotalWords == 0 {
		result.MinTotalWords = defaults.MinTotalWords
	}
	if result.FirstParagraphWindow == 0 {
		result.FirstParagraphWindow = defaults.FirstParagraphWindow
	}
	if result.MinParagraphs == 0 {
		result.MinParagraphs = defaults.MinParagraphs
	}
	if result.MaxParagraphs == 0 {
		result.MaxParagraphs = defaults.MaxParagraphs
	}
	if result.MinFAQs == 0 {
		result.MinFAQs = defaults.MinFAQs
	}
	if result.MaxFAQs == 0 {
		result.MaxFAQs = defaults.MaxFAQs
	}
	if result.MinVocabularyPerPara == 0 {
		result.MinVocabularyPerPara = defaults.MinVocabularyPerPara
	}
	return result
}

// Validate checks that the thresholds are internally consistent.
func (t Thresholds) Validate() error {
	if t.MinParagraphs > t.MaxParagraphs {
		return fmt.Errorf("rules error: min_paragraphs (%d) exceeds max_paragraphs (%d)", t.MinParagraphs, t.MaxParagraphs)
	}
	if t.MinFAQs > t.MaxFAQs {
		return fmt.Errorf("rules error: min_faqs (%d) exceeds max_faqs (%d)", t.MinFAQs, t.MaxFAQs)
	}
	if t.MinTotalWords < 0 || t.FirstParagraphWindow <= 0 {
		return fmt.Errorf("rules error: word thresholds must be positive")
	}
	return nil
}

// CountRule bounds how many blocks of one type a page may carry.
// Min and Max are inclusive.
type CountRule struct {
	Block types.BlockType
	Min   int
	Max   int
}

// BlockCountRules returns the required block count table for a service+city
// page. The exactly-one-H1 rule is level-sensitive and checked separately.
func (t Thresholds) BlockCountRules() []CountRule {
	return []CountRule{
		{Block: types.BlockParagraph, Min: t.MinParagraphs, Max: t.MaxParagraphs},
		{Block: types.BlockFAQ, Min: t.MinFAQs, Max: t.MaxFAQs},
		{Block: types.BlockNAP, Min: 0, Max: 1},
		{Block: types.BlockCTA, Min: 1, Max: 1},
	}
}
