// Package fetch - sitecontext.go turns a business's own website into prompt
// enrichment text, cached so one fetch serves a whole bulk job.
package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/parkerjr2/seogen/internal/db"
)

// DefaultSnapshotTTL is how long a cached site snapshot stays fresh.
const DefaultSnapshotTTL = 7 * 24 * time.Hour

// MaxContextChars bounds the site text passed into prompts.
const MaxContextChars = 2000

// browserTimeout bounds one headless rendering pass.
const browserTimeout = 45 * time.Second

// SiteContextProvider fetches and caches the main text of a business site.
// Every failure mode yields empty context: enrichment is optional and must
// never fail a generation.
type SiteContextProvider struct {
	db         *db.DB
	options    *Options
	ttl        time.Duration
	useBrowser bool
	verbose    bool
}

// SiteContextConfig holds configuration for the provider.
type SiteContextConfig struct {
	TTL            time.Duration
	DisableBrowser bool
	Options        *Options
	Verbose        bool
}

// NewSiteContextProvider creates a provider. The database is optional; with
// a nil database every lookup fetches fresh.
func NewSiteContextProvider(database *db.DB, config *SiteContextConfig) *SiteContextProvider {
	if config == nil {
		config = &SiteContextConfig{}
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.TTL == 0 {
		config.TTL = DefaultSnapshotTTL
	}
	return &SiteContextProvider{
		db:         database,
		options:    config.Options,
		ttl:        config.TTL,
		useBrowser: !config.DisableBrowser,
		verbose:    config.Verbose,
	}
}

// Context returns the site's extracted text, serving from the snapshot
// cache when fresh and storing the extraction otherwise. Empty string means
// no usable context.
func (p *SiteContextProvider) Context(ctx context.Context, siteURL string) string {
	if strings.TrimSpace(siteURL) == "" {
		return ""
	}

	if p.db != nil {
		snap, err := p.db.GetSiteSnapshot(ctx, siteURL)
		if err == nil && snap != nil && snap.IsFresh(p.ttl) {
			return snap.Content
		}
	}

	text := p.extract(ctx, siteURL)
	if text == "" {
		return ""
	}
	text = truncateText(text, MaxContextChars)

	if p.db != nil {
		// Cache write failures are not worth failing the request over
		_ = p.db.UpsertSiteSnapshot(ctx, siteURL, text)
	}
	return text
}

// extract runs the plain fetch, then the browser fallback when the builder
// renders client-side or the plain fetch came back thin.
func (p *SiteContextProvider) extract(ctx context.Context, siteURL string) string {
	var html, text string
	platform := PlatformUnknown

	result, err := URL(ctx, siteURL, p.options)
	if err == nil {
		html = result.HTML
		platform = DetectPlatform(html)
		text, _ = ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	}

	if p.useBrowser && (err != nil || RendersClientSide(platform) || ShouldUseBrowser(text)) {
		rendered, berr := WithBrowser(ctx, siteURL, browserTimeout, p.verbose)
		if berr == nil {
			renderedPlatform := DetectPlatform(rendered)
			renderedText, terr := ExtractMainText(rendered, PlatformContentSelectors(renderedPlatform), PlatformNoiseSelectors(renderedPlatform)...)
			if terr == nil && len(renderedText) > len(text) {
				text = renderedText
			}
		}
	}

	return strings.TrimSpace(text)
}

// truncateText cuts at the limit, backing up to the last word boundary so
// prompts never carry a split word.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
