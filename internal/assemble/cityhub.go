package assemble

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/slug"
	"github.com/parkerjr2/seogen/internal/types"
)

// DecodeCityHubBlocks decodes the ordered block list from a city hub
// payload through the tagged-union block decoder.
func DecodeCityHubBlocks(raw []byte) ([]types.ContentBlock, error) {
	var payload struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode city hub payload: %w", err)
	}

	blocks := make([]types.ContentBlock, 0, len(payload.Blocks))
	for i, msg := range payload.Blocks {
		block, err := types.UnmarshalBlock(msg)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// CityHub builds the typed page for a city hub request. The LLM supplies
// body blocks only; the H1 and a hero paragraph are prepended here. When
// the payload opens with a paragraph it is hoisted into the hero position,
// otherwise a default hero paragraph is inserted.
func CityHub(req types.PageRequest, body []types.ContentBlock) *types.PageResponse {
	trade := rules.TradeNameFor(req.Vertical, req.Service)
	label := orDefault(req.HubLabel, "Services")
	city := orDefault(req.City, "Your City")
	state := orDefault(req.State, "ST")
	lower := strings.ToLower(label)

	h1 := fmt.Sprintf("%s %s in %s, %s", label, titleWords(trade), city, state)
	title := h1
	if req.BusinessName != "" {
		title += " | " + req.BusinessName
	}

	citySlug := req.CitySlug
	if citySlug == "" {
		citySlug = slug.FromParts(city, state)
	}

	meta := fmt.Sprintf("Professional %s %s services in %s, %s. ", lower, trade, city, state)
	if req.ServiceAreaLabel != "" {
		meta += fmt.Sprintf("Serving %s. ", req.ServiceAreaLabel)
	}
	meta += orDefault(req.CTAText, "Contact Us Today") + "."

	body = sanitizeBlocks(body)
	blocks := []types.ContentBlock{types.Heading{Level: 1, Text: h1}}
	if len(body) > 0 {
		if para, ok := body[0].(types.Paragraph); ok {
			blocks = append(blocks, para)
			body = body[1:]
		} else {
			blocks = append(blocks, defaultHero(lower, trade, city, state))
		}
	} else {
		blocks = append(blocks, defaultHero(lower, trade, city, state))
	}
	blocks = append(blocks, body...)

	return &types.PageResponse{
		Title:           title,
		MetaDescription: truncateMeta(meta),
		Slug:            citySlug,
		Blocks:          blocks,
	}
}

// FallbackCityHubBlocks returns deterministic template content for a city
// hub when the LLM call fails. The first paragraph becomes the hero.
func FallbackCityHubBlocks(req types.PageRequest) []types.ContentBlock {
	trade := rules.TradeNameFor(req.Vertical, req.Service)
	label := orDefault(req.HubLabel, "Services")
	city := orDefault(req.City, "Your City")
	state := orDefault(req.State, "ST")
	lower := strings.ToLower(label)
	hubKey := rules.HubProfileFor(req.HubKey).Key
	citySlug := req.CitySlug
	if citySlug == "" {
		citySlug = slug.FromParts(city, state)
	}

	blocks := []types.ContentBlock{
		types.Paragraph{Text: fmt.Sprintf("Our %s %s services in %s, %s provide comprehensive solutions for property owners and managers. Whether you need routine maintenance, emergency repairs, or new installations, our experienced team delivers reliable results.", lower, trade, city, state)},
		types.Paragraph{Text: fmt.Sprintf("We understand the unique needs of properties in %s. Our services are designed to address common challenges while ensuring safety, compliance, and long-term performance.", city)},
		types.Heading{Level: 2, Text: fmt.Sprintf("Services We Offer in %s", city)},
		types.Paragraph{Text: fmt.Sprintf("Our comprehensive %s %s services in %s cover everything from basic maintenance to complex installations. We work with property owners, managers, and contractors throughout %s, %s.", lower, trade, city, city, state)},
		types.Paragraph{Text: fmt.Sprintf(`We provide %s %s services throughout %s, %s. [seogen_city_hub_links hub_key="%s" city_slug="%s"]`, lower, trade, city, state, hubKey, citySlug)},
		types.Heading{Level: 2, Text: fmt.Sprintf("Why Choose Us in %s", city)},
		types.Paragraph{Text: fmt.Sprintf("As a local %s service provider in %s, we understand the specific needs and challenges of properties in the area. Our team is familiar with local building codes and can respond quickly to service requests throughout %s, %s.", trade, city, city, state)},
		types.Heading{Level: 2, Text: "Frequently Asked Questions"},
		types.FAQ{
			Question: fmt.Sprintf("What %s %s services do you offer in %s?", lower, trade, city),
			Answer:   fmt.Sprintf("We offer a complete range of %s %s services in %s, %s including routine maintenance, repairs, installations, and emergency services. Our team has experience with both simple and complex projects.", lower, trade, city, state),
		},
		types.FAQ{
			Question: fmt.Sprintf("How quickly can you respond in %s?", city),
			Answer:   fmt.Sprintf("Response times in %s vary based on the nature of the request. For routine services, we typically schedule within a few days. Emergency situations receive priority response, often within hours.", city),
		},
		types.FAQ{
			Question: "Do you provide estimates?",
			Answer:   fmt.Sprintf("Yes, we provide detailed estimates for all projects in %s. Our estimates include scope of work, materials, labor, and timeline with transparent pricing.", city),
		},
	}

	if req.Phone != "" && req.CTAText != "" {
		blocks = append(blocks, types.CTA{Text: req.CTAText, Phone: req.Phone})
	}
	return blocks
}

func defaultHero(lowerLabel, trade, city, state string) types.Paragraph {
	return types.Paragraph{
		Text: fmt.Sprintf("Professional %s %s services in %s, %s. Expert solutions for your property.", lowerLabel, trade, city, state),
	}
}
