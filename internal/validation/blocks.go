package validation

import (
	"fmt"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

// CheckBlockCounts verifies the page carries the required number of blocks
// of each type: exactly one H1, paragraph and FAQ counts within their
// configured ranges, at most one NAP, exactly one CTA.
func CheckBlockCounts(resp *types.PageResponse, th rules.Thresholds) []types.Violation {
	var violations []types.Violation

	h1s := len(resp.Headings(1))
	if h1s != 1 {
		violations = append(violations, types.NewCountViolation(
			types.BlockHeading, 1, h1s,
			fmt.Sprintf("page must have exactly one H1 heading, found %d", h1s),
		))
	}

	for _, rule := range th.BlockCountRules() {
		actual := resp.CountBlocks(rule.Block)
		if actual >= rule.Min && actual <= rule.Max {
			continue
		}

		expected := rule.Min
		if actual > rule.Max {
			expected = rule.Max
		}

		var detail string
		switch {
		case rule.Min == rule.Max:
			detail = fmt.Sprintf("page must have exactly %d %s block(s), found %d", rule.Min, rule.Block, actual)
		case actual < rule.Min:
			detail = fmt.Sprintf("page must have at least %d %s block(s), found %d", rule.Min, rule.Block, actual)
		default:
			detail = fmt.Sprintf("page must have at most %d %s block(s), found %d", rule.Max, rule.Block, actual)
		}
		violations = append(violations, types.NewCountViolation(rule.Block, expected, actual, detail))
	}

	return violations
}

// CheckBlockFields verifies every block carries its required fields. The
// decode boundary already rejects unknown shapes; this catches structurally
// valid blocks with empty required content.
func CheckBlockFields(resp *types.PageResponse) []types.Violation {
	var violations []types.Violation

	for i, block := range resp.Blocks {
		switch b := block.(type) {
		case types.Heading:
			if b.Level < 1 || b.Level > 6 {
				violations = append(violations, types.NewViolation(types.ViolationMalformedBlock,
					"block %d: heading level %d is out of range", i, b.Level))
			}
			if b.Text == "" {
				violations = append(violations, types.NewViolation(types.ViolationMissingField,
					"block %d: heading has no text", i))
			}
		case types.Paragraph:
			if b.Text == "" {
				violations = append(violations, types.NewViolation(types.ViolationMissingField,
					"block %d: paragraph has no text", i))
			}
		case types.FAQ:
			if b.Question == "" {
				violations = append(violations, types.NewViolation(types.ViolationMissingField,
					"block %d: faq has no question", i))
			}
			if b.Answer == "" {
				violations = append(violations, types.NewViolation(types.ViolationMissingField,
					"block %d: faq has no answer", i))
			}
		case types.NAP:
			if b.BusinessName == "" {
				violations = append(violations, types.NewViolation(types.ViolationMissingField,
					"block %d: nap has no business name", i))
			}
		case types.CTA:
			if b.Text == "" {
				violations = append(violations, types.NewViolation(types.ViolationMissingField,
					"block %d: cta has no text", i))
			}
		default:
			violations = append(violations, types.NewViolation(types.ViolationMalformedBlock,
				"block %d: unknown block type %q", i, block.BlockType()))
		}
	}

	return violations
}
