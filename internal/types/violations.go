package types

import (
	"fmt"
	"strings"
)

// ViolationCode discriminates validation failure kinds.
type ViolationCode string

const (
	ViolationWrongBlockCount           ViolationCode = "wrong_block_count"
	ViolationMissingServiceCityInIntro ViolationCode = "missing_service_city_in_first_paragraph"
	ViolationMissingServiceCityInMeta  ViolationCode = "missing_service_city_in_meta"
	ViolationMissingServiceCityInH1    ViolationCode = "missing_service_city_in_h1"
	ViolationForbiddenPhrase           ViolationCode = "forbidden_phrase"
	ViolationLowVocabularyDensity      ViolationCode = "low_vocabulary_density"
	ViolationLowWordCount              ViolationCode = "low_word_count"
	ViolationMalformedBlock            ViolationCode = "malformed_block"
	ViolationMissingField              ViolationCode = "missing_field"
)

// Violation is one discrete validation failure. A validator run returns a
// slice of these; an empty slice means the page passed.
type Violation struct {
	Code   ViolationCode `json:"code"`
	Detail string        `json:"detail"`

	// Set for block count violations only.
	Block    *BlockType `json:"block,omitempty"`
	Expected *int       `json:"expected,omitempty"`
	Actual   *int       `json:"actual,omitempty"`
}

// NewViolation builds a violation with a code and formatted detail.
func NewViolation(code ViolationCode, format string, args ...any) Violation {
	return Violation{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// NewCountViolation builds a wrong-block-count violation for a block type.
func NewCountViolation(block BlockType, expected, actual int, detail string) Violation {
	return Violation{
		Code:     ViolationWrongBlockCount,
		Detail:   detail,
		Block:    &block,
		Expected: &expected,
		Actual:   &actual,
	}
}

// ViolationDetails returns the human-readable detail lines, one per
// violation, in order. The repair prompt is built from these.
func ViolationDetails(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Detail)
	}
	return out
}

// JoinViolations renders violations as a single numbered list.
func JoinViolations(violations []Violation) string {
	var b strings.Builder
	for i, v := range violations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, v.Detail)
	}
	return b.String()
}

// HasViolation reports whether any violation carries the given code.
func HasViolation(violations []Violation, code ViolationCode) bool {
	for _, v := range violations {
		if v.Code == code {
			return true
		}
	}
	return false
}
