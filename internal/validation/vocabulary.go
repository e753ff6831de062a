package validation

import (
	"strings"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

// CheckVocabularyDensity verifies each paragraph uses enough trade-specific
// terms. The vocabulary is selected by the request's vertical, or by matching
// the service name against known trades when no vertical is given. Generic
// copy with no trade vocabulary is the strongest doorway-page signal the
// mechanical checks can catch.
func CheckVocabularyDensity(resp *types.PageResponse, req types.PageRequest, th rules.Thresholds) []types.Violation {
	vocabulary := rules.VocabularyFor(req.Vertical, req.Service)
	if len(vocabulary) == 0 || th.MinVocabularyPerPara <= 0 {
		return nil
	}

	var violations []types.Violation
	for i, para := range resp.Paragraphs() {
		found := countTerms(para.Text, vocabulary)
		if found < th.MinVocabularyPerPara {
			violations = append(violations, types.NewViolation(types.ViolationLowVocabularyDensity,
				"paragraph %d uses %d trade term(s), needs at least %d", i+1, found, th.MinVocabularyPerPara))
		}
	}

	return violations
}

// countTerms counts how many distinct vocabulary terms appear in text,
// case-insensitively. Repeating one term does not raise the count.
func countTerms(text string, vocabulary []string) int {
	t := strings.ToLower(text)
	found := 0
	for _, term := range vocabulary {
		if strings.Contains(t, strings.ToLower(term)) {
			found++
		}
	}
	return found
}
