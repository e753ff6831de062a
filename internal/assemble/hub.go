package assemble

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

// HubSection is one named section of a service hub payload: a heading plus
// one or more paragraphs.
type HubSection struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

// HubSectionsPayload is the decoded LLM payload for a service hub page.
// Payload order is irrelevant; the rendered section order is decided by the
// deterministic variant.
type HubSectionsPayload struct {
	WhoThisIsFor   HubSection `json:"who_this_is_for"`
	CommonProjects HubSection `json:"common_projects"`
	Process        HubSection `json:"process"`
	Compliance     HubSection `json:"compliance"`
	ServiceAreas   HubSection `json:"service_areas"`
	Pricing        HubSection `json:"pricing"`
	FAQs           []FAQItem  `json:"faqs"`
}

// DecodeHubSections decodes a service hub payload from raw LLM JSON.
func DecodeHubSections(raw []byte) (HubSectionsPayload, error) {
	var p HubSectionsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return HubSectionsPayload{}, fmt.Errorf("failed to decode hub sections payload: %w", err)
	}
	return p, nil
}

// Variant deterministically selects one of three hub section orders from
// the hub slug: SHA-256, first 4 bytes big-endian, mod 3. The same slug
// always renders with the same order.
func Variant(hubSlug string) int {
	sum := sha256.Sum256([]byte(hubSlug))
	return int(binary.BigEndian.Uint32(sum[:4]) % 3)
}

// ServiceHub builds the typed page for a service hub request. The H1 is
// always first and the CTA always last; the six body sections and the FAQ
// group are ordered by the slug variant.
func ServiceHub(req types.PageRequest, payload HubSectionsPayload) *types.PageResponse {
	hub := rules.HubProfileFor(req.HubKey)
	trade := rules.TradeNameFor(req.Vertical, req.Service)
	label := orDefault(req.HubLabel, "Services")
	hubSlug := orDefault(req.HubSlug, "services")
	variant := Variant(hubSlug)
	cta := hubCTAText(req.CTAText, variant)

	h1 := fmt.Sprintf("%s %s Services", label, titleWords(trade))
	title := h1
	if req.BusinessName != "" {
		title += " | " + req.BusinessName
	}

	meta := fmt.Sprintf("Professional %s %s services. ", strings.ToLower(label), trade)
	if req.ServiceAreaLabel != "" {
		meta += fmt.Sprintf("Serving %s. ", req.ServiceAreaLabel)
	}
	meta += cta + "."

	who := sectionBlocks(payload.WhoThisIsFor)
	projects := sectionBlocks(payload.CommonProjects)
	process := sectionBlocks(payload.Process)
	compliance := sectionBlocks(payload.Compliance)
	areas := sectionBlocks(payload.ServiceAreas)
	pricing := sectionBlocks(payload.Pricing)
	faqs := faqBlocks(orDefault(hub.Headings.FAQs, "Frequently Asked Questions"), payload.FAQs)

	var ordered [][]types.ContentBlock
	switch variant {
	case 1:
		ordered = [][]types.ContentBlock{projects, who, compliance, process, areas, faqs, pricing}
	case 2:
		ordered = [][]types.ContentBlock{process, compliance, who, projects, pricing, areas, faqs}
	default:
		ordered = [][]types.ContentBlock{who, projects, process, compliance, areas, pricing, faqs}
	}

	blocks := []types.ContentBlock{types.Heading{Level: 1, Text: h1}}
	for _, part := range ordered {
		blocks = append(blocks, part...)
	}
	blocks = append(blocks, types.CTA{Text: cta, Phone: req.Phone})

	return &types.PageResponse{
		Title:           title,
		MetaDescription: truncateMeta(meta),
		Slug:            hubSlug,
		Blocks:          blocks,
	}
}

// FallbackHubSections returns deterministic template content for a service
// hub when the LLM call fails. Hub pages degrade to this instead of failing
// the request.
func FallbackHubSections(req types.PageRequest) HubSectionsPayload {
	hub := rules.HubProfileFor(req.HubKey)
	trade := rules.TradeNameFor(req.Vertical, req.Service)
	label := orDefault(req.HubLabel, "Services")
	lower := strings.ToLower(label)
	titled := titleWords(trade)
	area := orDefault(req.ServiceAreaLabel, "the area")

	return HubSectionsPayload{
		WhoThisIsFor: HubSection{
			Heading: fmt.Sprintf("Who Benefits from %s %s Services", label, titled),
			Paragraphs: []string{
				fmt.Sprintf("These services are designed for property owners who need reliable %s work.", trade),
				"We work with clients who value quality workmanship and professional service.",
			},
		},
		CommonProjects: HubSection{
			Heading: fmt.Sprintf("Common %s %s Projects", label, titled),
			Paragraphs: []string{
				fmt.Sprintf("We handle a wide range of %s %s projects including installations, repairs, maintenance, and upgrades.", lower, trade),
			},
		},
		Process: HubSection{
			Heading: fmt.Sprintf("Our %s Service Process", label),
			Paragraphs: []string{
				"We begin every project with a thorough assessment and provide clear communication throughout the process.",
			},
		},
		Compliance: HubSection{
			Heading: "Permits, Codes & Safety Standards",
			Paragraphs: []string{
				"All work complies with applicable building codes and safety standards. We handle necessary permits and inspections.",
			},
		},
		ServiceAreas: HubSection{
			Heading: "Primary Service Areas",
			Paragraphs: []string{
				fmt.Sprintf("We provide %s %s services throughout %s.", lower, trade, area),
				fmt.Sprintf(`Explore our services in your area. [seogen_service_hub_city_links hub_key="%s" limit="6"]`, hub.Key),
			},
		},
		Pricing: HubSection{
			Heading: "Understanding Project Costs",
			Paragraphs: []string{
				"Project costs vary based on scope, materials, and complexity. We provide detailed estimates before starting work.",
			},
		},
		FAQs: []FAQItem{
			{
				Question: fmt.Sprintf("What types of %s %s services do you provide?", lower, trade),
				Answer:   fmt.Sprintf("We offer comprehensive %s %s services including installations, repairs, maintenance, and emergency services.", lower, trade),
			},
			{
				Question: "How quickly can you respond to service requests?",
				Answer:   "Response times vary based on the nature of the request and current schedule. We'll provide an estimated timeframe when you contact us.",
			},
			{
				Question: "Do you provide estimates before starting work?",
				Answer:   "Yes, we provide detailed estimates for all projects including scope of work, materials, labor, and timeline.",
			},
			{
				Question: "Are your technicians licensed and insured?",
				Answer:   "Yes, our technicians hold appropriate licenses and we maintain comprehensive insurance coverage.",
			},
			{
				Question: "What areas do you serve?",
				Answer:   "We provide services throughout our coverage area. Contact us to confirm availability for your location.",
			},
			{
				Question: "What warranty comes with your work?",
				Answer:   "We warranty our workmanship. Specific terms depend on the type of work and materials used.",
			},
		},
	}
}

func sectionBlocks(s HubSection) []types.ContentBlock {
	var blocks []types.ContentBlock
	if heading := StripHTML(s.Heading); heading != "" {
		blocks = append(blocks, types.Heading{Level: 2, Text: heading})
	}
	for _, p := range s.Paragraphs {
		if text := StripHTML(p); text != "" {
			blocks = append(blocks, types.Paragraph{Text: text})
		}
	}
	return blocks
}

func faqBlocks(heading string, faqs []FAQItem) []types.ContentBlock {
	if len(faqs) == 0 {
		return nil
	}
	blocks := []types.ContentBlock{types.Heading{Level: 2, Text: heading}}
	for _, f := range faqs {
		q, a := StripHTML(f.Question), StripHTML(f.Answer)
		if q == "" || a == "" {
			continue
		}
		blocks = append(blocks, types.FAQ{Question: q, Answer: a})
	}
	return blocks
}

func hubCTAText(requested string, variant int) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	switch variant {
	case 1:
		return "Request Your Free Estimate"
	case 2:
		return "Schedule Your Service"
	default:
		return "Get Started Today"
	}
}
