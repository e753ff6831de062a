// Package pipeline runs the generate, validate, repair loop that turns a page
// request into a validated PageResponse. Service+city pages follow the strict
// path: one generation call, full validation, at most one repair call. Hub
// pages degrade to deterministic fallback content when the model call fails,
// so a hub request never fails on model output alone.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/parkerjr2/seogen/internal/assemble"
	"github.com/parkerjr2/seogen/internal/llm"
	"github.com/parkerjr2/seogen/internal/prompts"
	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/schemas"
	"github.com/parkerjr2/seogen/internal/types"
	"github.com/parkerjr2/seogen/internal/validation"
)

// Per-call timeouts. Preview calls get the short timeout so interactive
// requests fail fast; full generation gets the long one.
const (
	DefaultGenerateTimeout = 90 * time.Second
	DefaultPreviewTimeout  = 30 * time.Second
)

// Hub pages ask for more varied, longer copy than service+city pages.
const (
	hubTemperature = 0.8
	hubMaxTokens   = 3500
)

// SiteContextFunc returns text extracted from the business's own site for
// prompt enrichment, or "" when none is available. Implementations swallow
// their own failures; enrichment never fails a generation.
type SiteContextFunc func(ctx context.Context, siteURL string) string

// LocalFactsFunc returns verified local facts for a city/state pair, or nil.
type LocalFactsFunc func(ctx context.Context, city, state string) []string

// Config adjusts a Generator. Zero-value fields fall back to the default
// thresholds and timeouts; SiteContext and LocalFacts are optional.
type Config struct {
	Thresholds      rules.Thresholds
	GenerateTimeout time.Duration
	PreviewTimeout  time.Duration
	SiteContext     SiteContextFunc
	LocalFacts      LocalFactsFunc
}

// Generator runs page generation against an LLM client. It issues at most
// two model calls per page: one generation call, plus one repair call when
// the first response assembles cleanly but fails validation.
type Generator struct {
	client llm.Client
	cfg    Config
}

// NewGenerator builds a Generator, filling unset config fields with
// defaults.
func NewGenerator(client llm.Client, cfg Config) *Generator {
	cfg.Thresholds = cfg.Thresholds.MergeWithDefaults(rules.DefaultThresholds())
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = DefaultGenerateTimeout
	}
	if cfg.PreviewTimeout <= 0 {
		cfg.PreviewTimeout = DefaultPreviewTimeout
	}
	return &Generator{client: client, cfg: cfg}
}

// Generate produces a validated page for the request using the full
// generation timeout.
func (g *Generator) Generate(ctx context.Context, req types.PageRequest) (*types.PageResponse, error) {
	return g.generate(ctx, req, g.cfg.GenerateTimeout)
}

// Preview runs the same loop as Generate with the shorter preview timeout.
// The caller decides what not to persist; the loop itself is identical.
func (g *Generator) Preview(ctx context.Context, req types.PageRequest) (*types.PageResponse, error) {
	return g.generate(ctx, req, g.cfg.PreviewTimeout)
}

func (g *Generator) generate(ctx context.Context, req types.PageRequest, timeout time.Duration) (*types.PageResponse, error) {
	switch req.Mode() {
	case types.ModeServiceHub:
		return g.generateServiceHub(ctx, req, timeout)
	case types.ModeCityHub:
		return g.generateCityHub(ctx, req, timeout)
	default:
		return g.generateServiceCity(ctx, req, timeout)
	}
}

func (g *Generator) generateServiceCity(ctx context.Context, req types.PageRequest, timeout time.Duration) (*types.PageResponse, error) {
	in := g.serviceCityInput(ctx, req)

	raw, err := g.call(ctx, prompts.BuildServiceCityPrompt(in), timeout, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to generate page content: %w", err)
	}

	resp, violations, err := g.buildServiceCity(req, raw)
	if err != nil {
		return nil, err
	}
	if len(violations) == 0 {
		return resp, nil
	}

	// One repair call, carrying the previous JSON and every violation.
	repaired, err := g.call(ctx, prompts.BuildRepairPrompt(in, raw, violations), timeout, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to repair page content: %w", err)
	}
	resp, violations, err = g.buildServiceCity(req, repaired)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &RepairFailedError{Violations: violations}
	}
	return resp, nil
}

// buildServiceCity decodes, assembles and validates one raw model reply. A
// reply that fails the payload schema is malformed and not repairable.
func (g *Generator) buildServiceCity(req types.PageRequest, raw string) (*types.PageResponse, []types.Violation, error) {
	if err := schemas.ValidatePayload(schemas.ServiceCityPayload, []byte(raw)); err != nil {
		return nil, nil, &llm.MalformedResponseError{Cause: err}
	}
	payload, err := assemble.DecodeServiceCity([]byte(raw))
	if err != nil {
		return nil, nil, &llm.MalformedResponseError{Cause: err}
	}
	resp := assemble.ServiceCity(req, payload)
	return resp, validation.Validate(resp, req, g.cfg.Thresholds), nil
}

func (g *Generator) generateServiceHub(ctx context.Context, req types.PageRequest, timeout time.Duration) (*types.PageResponse, error) {
	prompt := prompts.BuildHubSectionsPrompt(hubInput(req))

	payload, ok := g.hubSectionsFromModel(ctx, prompt, timeout)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		payload = assemble.FallbackHubSections(req)
	}
	return assemble.ServiceHub(req, payload), nil
}

func (g *Generator) hubSectionsFromModel(ctx context.Context, prompt prompts.Prompt, timeout time.Duration) (assemble.HubSectionsPayload, bool) {
	raw, err := g.call(ctx, prompt, timeout, hubTemperature, hubMaxTokens)
	if err != nil {
		return assemble.HubSectionsPayload{}, false
	}
	if err := schemas.ValidatePayload(schemas.HubSectionsPayload, []byte(raw)); err != nil {
		return assemble.HubSectionsPayload{}, false
	}
	payload, err := assemble.DecodeHubSections([]byte(raw))
	if err != nil {
		return assemble.HubSectionsPayload{}, false
	}
	return payload, true
}

func (g *Generator) generateCityHub(ctx context.Context, req types.PageRequest, timeout time.Duration) (*types.PageResponse, error) {
	prompt := prompts.BuildCityHubPrompt(hubInput(req))

	body, ok := g.cityHubFromModel(ctx, prompt, timeout)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body = assemble.FallbackCityHubBlocks(req)
	}
	return assemble.CityHub(req, body), nil
}

func (g *Generator) cityHubFromModel(ctx context.Context, prompt prompts.Prompt, timeout time.Duration) ([]types.ContentBlock, bool) {
	raw, err := g.call(ctx, prompt, timeout, 0, 0)
	if err != nil {
		return nil, false
	}
	if err := schemas.ValidatePayload(schemas.CityHubBlocksPayload, []byte(raw)); err != nil {
		return nil, false
	}
	body, err := assemble.DecodeCityHubBlocks([]byte(raw))
	if err != nil {
		return nil, false
	}
	return body, true
}

// call sends one prompt with a per-call timeout. Zero temperature and
// maxTokens fall through to the client defaults.
func (g *Generator) call(ctx context.Context, p prompts.Prompt, timeout time.Duration, temperature float32, maxTokens int) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return g.client.GenerateJSON(callCtx, llm.Request{
		System:      p.System,
		User:        p.User,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

func (g *Generator) serviceCityInput(ctx context.Context, req types.PageRequest) prompts.ServiceCityInput {
	in := prompts.ServiceCityInput{
		Request:    req,
		TradeName:  rules.TradeNameFor(req.Vertical, req.Service),
		Vocabulary: rules.VocabularyFor(req.Vertical, req.Service),
		Thresholds: g.cfg.Thresholds,
	}
	if g.cfg.LocalFacts != nil {
		in.LocalFacts = g.cfg.LocalFacts(ctx, req.City, req.State)
	}
	if g.cfg.SiteContext != nil && req.SiteURL != "" {
		in.SiteContext = g.cfg.SiteContext(ctx, req.SiteURL)
	}
	return in
}

func hubInput(req types.PageRequest) prompts.HubInput {
	return prompts.NewHubInput(req,
		rules.HubProfileFor(req.HubKey),
		rules.TradeNameFor(req.Vertical, req.Service),
		rules.VocabularyFor(req.Vertical, req.Service),
		nil)
}
