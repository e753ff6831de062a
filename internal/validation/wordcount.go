package validation

import (
	"strings"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

// CheckWordCount verifies the page body meets the minimum total word count.
// Only paragraph text and FAQ answers count; headings, questions and CTA
// text are navigation, not body copy.
func CheckWordCount(resp *types.PageResponse, th rules.Thresholds) []types.Violation {
	total := 0
	for _, block := range resp.Blocks {
		switch b := block.(type) {
		case types.Paragraph:
			total += len(strings.Fields(b.Text))
		case types.FAQ:
			total += len(strings.Fields(b.Answer))
		}
	}

	if total < th.MinTotalWords {
		return []types.Violation{types.NewViolation(types.ViolationLowWordCount,
			"content must be at least %d words, got %d", th.MinTotalWords, total)}
	}
	return nil
}
