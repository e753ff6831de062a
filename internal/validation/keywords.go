package validation

import (
	"strings"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

// CheckKeywordPlacement verifies the service and city names appear where
// local search expects them: in the H1, in the meta description, and within
// the first words of the first paragraph.
func CheckKeywordPlacement(resp *types.PageResponse, req types.PageRequest, th rules.Thresholds) []types.Violation {
	var violations []types.Violation

	service := strings.ToLower(strings.TrimSpace(req.Service))
	city := strings.ToLower(strings.TrimSpace(req.City))

	if h1s := resp.Headings(1); len(h1s) > 0 {
		if !containsBoth(h1s[0].Text, service, city) {
			violations = append(violations, types.NewViolation(types.ViolationMissingServiceCityInH1,
				"H1 heading must mention %q and %q", req.Service, req.City))
		}
	}

	if !containsBoth(resp.MetaDescription, service, city) {
		violations = append(violations, types.NewViolation(types.ViolationMissingServiceCityInMeta,
			"meta description must mention %q and %q", req.Service, req.City))
	}

	// Missing paragraphs are reported by the block count check; nothing to
	// scan here in that case.
	if paragraphs := resp.Paragraphs(); len(paragraphs) > 0 {
		window := firstWords(paragraphs[0].Text, th.FirstParagraphWindow)
		if !containsBoth(window, service, city) {
			violations = append(violations, types.NewViolation(types.ViolationMissingServiceCityInIntro,
				"first paragraph must mention %q and %q within the first %d words", req.Service, req.City, th.FirstParagraphWindow))
		}
	}

	return violations
}

func containsBoth(text, service, city string) bool {
	t := strings.ToLower(text)
	return strings.Contains(t, service) && strings.Contains(t, city)
}

// firstWords returns the first n whitespace-separated words of text. Texts
// shorter than n words are returned whole.
func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
