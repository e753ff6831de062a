// Package validation checks assembled pages against the content rules.
// Every check is a pure substring or regex test; validation must be cheap
// enough to run on every generation without extra API cost.
package validation

import (
	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

// Validate runs the full check battery against an assembled page. All checks
// run even when an early one fails: the repair prompt is built from the
// complete violation list, so short-circuiting would hide problems from the
// repair call.
func Validate(resp *types.PageResponse, req types.PageRequest, th rules.Thresholds) []types.Violation {
	var violations []types.Violation

	violations = append(violations, CheckBlockCounts(resp, th)...)
	violations = append(violations, CheckBlockFields(resp)...)
	violations = append(violations, CheckKeywordPlacement(resp, req, th)...)
	violations = append(violations, CheckForbiddenPhrases(resp, rules.ForbiddenPhrases())...)
	violations = append(violations, CheckTemplatedPhrasing(resp, rules.TemplatedPatterns())...)
	violations = append(violations, CheckVocabularyDensity(resp, req, th)...)
	violations = append(violations, CheckWordCount(resp, th)...)

	return violations
}
