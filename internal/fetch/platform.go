// Package fetch - platform.go provides website-builder detection and
// builder-specific selectors. Most small trade businesses run on a handful
// of builders, and knowing which one shapes both text extraction and the
// decision to render with a browser.
package fetch

import "strings"

// Platform represents a known website builder.
type Platform string

const (
	// PlatformWordPress covers self-hosted and wordpress.com sites
	PlatformWordPress Platform = "wordpress"
	// PlatformWix is the Wix site builder
	PlatformWix Platform = "wix"
	// PlatformSquarespace is the Squarespace site builder
	PlatformSquarespace Platform = "squarespace"
	// PlatformUnknown is an unrecognized builder
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the website builder from page HTML. Builders
// are detected from asset hosts and generator markers rather than the URL,
// since nearly every business serves from a custom domain.
func DetectPlatform(html string) Platform {
	lower := strings.ToLower(html)

	// WordPress markers
	if strings.Contains(lower, "wp-content") ||
		strings.Contains(lower, "wp-includes") ||
		strings.Contains(lower, `content="wordpress`) {
		return PlatformWordPress
	}

	// Wix markers
	if strings.Contains(lower, "wixstatic.com") ||
		strings.Contains(lower, "wix.com") ||
		strings.Contains(lower, "wixsite.com") {
		return PlatformWix
	}

	// Squarespace markers
	if strings.Contains(lower, "squarespace.com") ||
		strings.Contains(lower, "this is squarespace") ||
		strings.Contains(lower, "sqs-block") {
		return PlatformSquarespace
	}

	return PlatformUnknown
}

// RendersClientSide reports whether a builder ships an empty shell page and
// paints content with JavaScript, in which case a plain fetch is pointless
// and the browser path should run first.
func RendersClientSide(platform Platform) bool {
	return platform == PlatformWix
}

// PlatformContentSelectors returns content selectors for a specific builder.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformWordPress:
		return []string{
			".entry-content", // Primary WordPress content block
			".site-content",
			"#primary",
			"main",
			".content",
		}
	case PlatformWix:
		return []string{
			"#PAGES_CONTAINER",
			"#SITE_CONTAINER",
			"main",
		}
	case PlatformSquarespace:
		return []string{
			".sqs-block-content",
			"#page",
			"main",
			".content-wrapper",
		}
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific
// builder.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all builders
	common := []string{
		// Contact and quote forms
		"form",
		".contact-form",
		".quote-form",
		".wpcf7",

		// Review and badge widgets
		".reviews-widget",
		".google-reviews",
		".trust-badges",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Chat widgets
		".chat-widget",
		"#tawk-bubble",
		".intercom-lightweight-app",
	}

	switch platform {
	case PlatformWordPress:
		return append(common,
			".widget-area",
			"#secondary",
			".comments-area",
			".elementor-location-header",
			".elementor-location-footer",
		)
	case PlatformWix:
		return append(common,
			"#SITE_HEADER",
			"#SITE_FOOTER",
			"#WIX_ADS",
		)
	case PlatformSquarespace:
		return append(common,
			".sqs-announcement-bar-dropzone",
			".sqs-cookie-banner-v2",
			"#footer-sections",
		)
	default:
		return common
	}
}
