package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform_WordPress(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"theme assets", `<link rel="stylesheet" href="/wp-content/themes/roofer/style.css">`},
		{"core assets", `<script src="/wp-includes/js/jquery.js"></script>`},
		{"generator meta", `<meta name="generator" content="WordPress 6.4">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, PlatformWordPress, DetectPlatform(tt.html))
		})
	}
}

func TestDetectPlatform_Wix(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"static assets", `<img src="https://static.wixstatic.com/media/photo.jpg">`},
		{"free subdomain", `<link rel="canonical" href="https://acmeroofing.wixsite.com/home">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, PlatformWix, DetectPlatform(tt.html))
		})
	}
}

func TestDetectPlatform_Squarespace(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"comment marker", `<!-- This is Squarespace. -->`},
		{"block classes", `<div class="sqs-block-content"><p>About us</p></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, PlatformSquarespace, DetectPlatform(tt.html))
		})
	}
}

func TestDetectPlatform_Unknown(t *testing.T) {
	assert.Equal(t, PlatformUnknown, DetectPlatform(`<html><body><p>Hand-rolled site</p></body></html>`))
	assert.Equal(t, PlatformUnknown, DetectPlatform(""))
}

func TestRendersClientSide(t *testing.T) {
	assert.True(t, RendersClientSide(PlatformWix))
	assert.False(t, RendersClientSide(PlatformWordPress))
	assert.False(t, RendersClientSide(PlatformSquarespace))
	assert.False(t, RendersClientSide(PlatformUnknown))
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformWordPress), ".entry-content")
	assert.Contains(t, PlatformContentSelectors(PlatformWix), "#PAGES_CONTAINER")
	assert.Contains(t, PlatformContentSelectors(PlatformSquarespace), ".sqs-block-content")
	assert.Equal(t, DefaultTextSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	for _, platform := range []Platform{PlatformWordPress, PlatformWix, PlatformSquarespace, PlatformUnknown} {
		assert.Contains(t, PlatformNoiseSelectors(platform), ".cookie-banner", "platform %s", platform)
	}
	assert.Contains(t, PlatformNoiseSelectors(PlatformWix), "#WIX_ADS")
	assert.Contains(t, PlatformNoiseSelectors(PlatformWordPress), ".widget-area")
}
