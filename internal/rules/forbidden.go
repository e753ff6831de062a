package rules

import "regexp"

// forbiddenPhrases are rejected anywhere in a page's concatenated text,
// case-insensitively. The first group is marketing fluff, the second is
// meta-language that reads as written-for-crawlers.
var forbiddenPhrases = []string{
	"top-notch",
	"premier",
	"best-in-class",
	"this page",
	"this article",
}

// templatedPatterns flag boilerplate phrasing that makes pages read as
// stamped from one template. Matched case-insensitively against each
// paragraph; a hit is reported as a forbidden-phrase violation.
var templatedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\blook no further\b`),
	regexp.MustCompile(`(?i)\bwe are (?:the|your) (?:leading|top|number one|#1|go-to)\b`),
	regexp.MustCompile(`(?i)\byour (?:one[- ]stop|trusted) (?:shop|source|choice|partner)\b`),
	regexp.MustCompile(`(?i)\bbest [a-z ]+ in town\b`),
}

// ForbiddenPhrases returns the default forbidden phrase list.
func ForbiddenPhrases() []string {
	out := make([]string, len(forbiddenPhrases))
	copy(out, forbiddenPhrases)
	return out
}

// TemplatedPatterns returns the compiled boilerplate patterns.
func TemplatedPatterns() []*regexp.Regexp {
	return templatedPatterns
}
