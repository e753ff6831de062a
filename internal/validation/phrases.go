package validation

import (
	"regexp"
	"strings"

	"github.com/parkerjr2/seogen/internal/types"
)

// CheckForbiddenPhrases scans the page's concatenated text for each phrase,
// case-insensitively. One violation per matched phrase, not per occurrence.
func CheckForbiddenPhrases(resp *types.PageResponse, phrases []string) []types.Violation {
	var violations []types.Violation

	text := strings.ToLower(strings.Join(resp.AllText(), " "))
	for _, phrase := range phrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" {
			continue
		}
		if strings.Contains(text, p) {
			violations = append(violations, types.NewViolation(types.ViolationForbiddenPhrase,
				"content contains forbidden phrase %q", phrase))
		}
	}

	return violations
}

// CheckTemplatedPhrasing flags paragraphs that match a boilerplate pattern.
// Reported under the forbidden phrase code with the matched text quoted.
func CheckTemplatedPhrasing(resp *types.PageResponse, patterns []*regexp.Regexp) []types.Violation {
	var violations []types.Violation

	for i, para := range resp.Paragraphs() {
		for _, re := range patterns {
			if match := re.FindString(para.Text); match != "" {
				violations = append(violations, types.NewViolation(types.ViolationForbiddenPhrase,
					"paragraph %d uses templated phrasing %q", i+1, match))
			}
		}
	}

	return violations
}
