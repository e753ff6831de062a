package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

func TestCheckVocabularyDensity_ValidPage(t *testing.T) {
	violations := CheckVocabularyDensity(validPage(), validRequest(), rules.DefaultThresholds())
	assert.Empty(t, violations)
}

func TestCheckVocabularyDensity_GenericParagraph(t *testing.T) {
	resp := validPage()
	resp.Blocks[2] = types.Paragraph{Text: "We show up on time, treat your property with respect, and stand behind our work."}

	violations := CheckVocabularyDensity(resp, validRequest(), rules.DefaultThresholds())
	require.Len(t, violations, 1)
	assert.Equal(t, types.ViolationLowVocabularyDensity, violations[0].Code)
	assert.Contains(t, violations[0].Detail, "paragraph 2")
	assert.Contains(t, violations[0].Detail, "0 trade term(s)")
}

func TestCheckVocabularyDensity_EveryParagraphChecked(t *testing.T) {
	resp := validPage()
	generic := types.Paragraph{Text: "Call today and see why neighbors recommend us year after year."}
	resp.Blocks[1] = generic
	resp.Blocks[2] = generic
	resp.Blocks[3] = generic

	violations := CheckVocabularyDensity(resp, validRequest(), rules.DefaultThresholds())
	assert.Len(t, violations, 3)
}

func TestCheckVocabularyDensity_ExplicitVerticalWins(t *testing.T) {
	resp := validPage()
	req := validRequest()

	// Pin the plumber vocabulary even though the service name says gutters.
	// The roofing terms in the fixture no longer count.
	req.Vertical = "plumber"

	violations := CheckVocabularyDensity(resp, req, rules.DefaultThresholds())
	assert.NotEmpty(t, violations)
}

func TestCheckVocabularyDensity_RepeatedTermCountsOnce(t *testing.T) {
	resp := validPage()
	req := validRequest()
	th := rules.DefaultThresholds()
	th.MinVocabularyPerPara = 2

	resp.Blocks[1] = types.Paragraph{Text: "Flashing, more flashing, and still more flashing."}
	resp.Blocks[2] = types.Paragraph{Text: "New flashing over fresh underlayment seals the joint."}
	resp.Blocks[3] = types.Paragraph{Text: "Shingles and decking both get replaced."}

	violations := CheckVocabularyDensity(resp, req, th)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Detail, "paragraph 1")
	assert.Contains(t, violations[0].Detail, "1 trade term(s)")
}

func TestCheckVocabularyDensity_ZeroThresholdDisables(t *testing.T) {
	resp := validPage()
	resp.Blocks[1] = types.Paragraph{Text: "Nothing trade specific here at all."}

	th := rules.DefaultThresholds()
	th.MinVocabularyPerPara = 0

	assert.Empty(t, CheckVocabularyDensity(resp, validRequest(), th))
}

func TestCountTerms(t *testing.T) {
	vocabulary := []string{"flashing", "decking", "ridge"}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"none", "plain text", 0},
		{"one", "check the flashing", 1},
		{"distinct terms", "flashing over the decking near the ridge", 3},
		{"repeats count once", "flashing on flashing", 1},
		{"case insensitive", "FLASHING and Decking", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countTerms(tt.text, vocabulary))
		})
	}
}
