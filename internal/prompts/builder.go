package prompts

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/parkerjr2/seogen/internal/rules"
	"github.com/parkerjr2/seogen/internal/types"
)

// Embedded template files.
const (
	GenerationFile = "generation.json"
	HubFile        = "hubs.json"
)

// Prompt is a composed system+user message pair ready for an LLM call.
type Prompt struct {
	System string
	User   string
}

// ServiceCityInput carries everything the service+city page prompt needs.
// LocalFacts and SiteContext are optional enrichment; empty values are
// omitted from the prompt.
type ServiceCityInput struct {
	Request     types.PageRequest
	TradeName   string
	Vocabulary  []string
	Thresholds  rules.Thresholds
	LocalFacts  []string
	SiteContext string
}

// BuildServiceCityPrompt composes the generation prompt for a service+city
// page. The prompt asks only for meta description, sections, FAQs and CTA
// text; title, H1 and slug are never requested from the model.
func BuildServiceCityPrompt(in ServiceCityInput) Prompt {
	data := serviceCityData(in)
	return Prompt{
		System: Format(MustGet(GenerationFile, "system"), data),
		User:   Format(MustGet(GenerationFile, "service-city"), data),
	}
}

// BuildRepairPrompt composes the single repair prompt from the model's
// previous JSON and the complete violation list. One repair prompt carries
// every violation, which is why validation collects all of them.
func BuildRepairPrompt(in ServiceCityInput, previousJSON string, violations []types.Violation) Prompt {
	data := serviceCityData(in)
	data["Violations"] = formatViolations(violations)
	data["PreviousJSON"] = previousJSON
	return Prompt{
		System: Format(MustGet(GenerationFile, "system"), data),
		User:   Format(MustGet(GenerationFile, "repair"), data),
	}
}

func serviceCityData(in ServiceCityInput) map[string]string {
	req := in.Request
	return map[string]string{
		"TradeName":            in.TradeName,
		"Service":              req.Service,
		"City":                 req.City,
		"State":                req.State,
		"BusinessName":         req.BusinessName,
		"Phone":                req.Phone,
		"Address":              req.Address,
		"Vocabulary":           strings.Join(firstN(in.Vocabulary, 8), ", "),
		"FirstParagraphWindow": fmt.Sprintf("%d", in.Thresholds.FirstParagraphWindow),
		"MinTotalWords":        fmt.Sprintf("%d", in.Thresholds.MinTotalWords),
		"MinParagraphs":        fmt.Sprintf("%d", in.Thresholds.MinParagraphs),
		"MaxParagraphs":        fmt.Sprintf("%d", in.Thresholds.MaxParagraphs),
		"MinFAQs":              fmt.Sprintf("%d", in.Thresholds.MinFAQs),
		"MaxFAQs":              fmt.Sprintf("%d", in.Thresholds.MaxFAQs),
		"LocalContext":         formatLocalFacts(in.LocalFacts),
		"SiteContext":          formatSiteContext(in.SiteContext),
	}
}

// HubInput carries everything the hub page prompts need. Construct it with
// NewHubInput so display defaults are applied consistently.
type HubInput struct {
	Hub          rules.HubProfile
	TradeName    string
	Vocabulary   []string
	HubKey       string
	HubLabel     string
	HubSlug      string
	CitySlug     string
	City         string
	State        string
	BusinessName string
	Phone        string
	ServiceArea  string
	CTAText      string
	Services     []string
}

// NewHubInput resolves a hub prompt input from a page request, filling the
// display defaults hub pages use when a field was not provided.
func NewHubInput(req types.PageRequest, hub rules.HubProfile, tradeName string, vocabulary, services []string) HubInput {
	return HubInput{
		Hub:          hub,
		TradeName:    tradeName,
		Vocabulary:   vocabulary,
		HubKey:       orDefault(req.HubKey, rules.DefaultHub),
		HubLabel:     orDefault(req.HubLabel, "Services"),
		HubSlug:      orDefault(req.HubSlug, "services"),
		CitySlug:     req.CitySlug,
		City:         orDefault(req.City, "Your City"),
		State:        orDefault(req.State, "ST"),
		BusinessName: orDefault(req.BusinessName, "Our Company"),
		Phone:        req.Phone,
		ServiceArea:  req.ServiceAreaLabel,
		CTAText:      req.CTAText,
		Services:     services,
	}
}

// Writing style variations for hub prompts. The pick is keyed off the hub
// slug rather than a random source so repeated generations of the same hub
// produce the same prompt.
var (
	writingStyles = []string{
		"conversational and approachable",
		"authoritative and technical",
		"straightforward and practical",
		"detailed and educational",
	}
	openingApproaches = []string{
		"Start by addressing common pain points",
		"Begin with the value proposition",
		"Open with what makes this service essential",
		"Lead with customer concerns and solutions",
	}
	contentAngles = []string{
		"Focus on real-world scenarios and practical examples",
		"Emphasize problem-solving and solutions",
		"Highlight expertise and experience",
		"Address common misconceptions and concerns",
	}
	faqApproaches = []string{
		"Answer questions in a direct, helpful manner",
		"Provide detailed explanations with context",
		"Use examples to illustrate answers",
		"Address both the question and underlying concerns",
	}
)

// BuildHubSectionsPrompt composes the generation prompt for a service hub
// page. Section headings, pain points, job examples and FAQ examples come
// from the hub profile so the six hub types read differently.
func BuildHubSectionsPrompt(in HubInput) Prompt {
	seed := styleSeed(in.HubSlug)
	headings := in.Hub.Headings

	faqExamples := make([]string, 0, 3)
	for _, faq := range rules.HubFAQs(in.Hub.Key, 3) {
		faqExamples = append(faqExamples, faq.Question)
	}

	data := map[string]string{
		"TradeName":           in.TradeName,
		"HubLabel":            in.HubLabel,
		"HubLabelLower":       strings.ToLower(in.HubLabel),
		"HubKey":              in.HubKey,
		"BusinessName":        in.BusinessName,
		"Phone":               in.Phone,
		"ServiceArea":         orDefault(in.ServiceArea, "your area"),
		"CTAText":             in.CTAText,
		"ServicesList":        formatServicesList(in.Services),
		"Vocabulary":          strings.Join(firstN(in.Vocabulary, 10), ", "),
		"Audience":            in.Hub.AudienceDescription,
		"PainPoints":          "- " + strings.Join(in.Hub.PainPoints, "\n- "),
		"Disqualifiers":       strings.Join(in.Hub.Disqualifiers, "; "),
		"JobExamples":         strings.Join(in.Hub.JobExamples, "; "),
		"SchedulingFocus":     in.Hub.SchedulingFocus,
		"ComplianceFocus":     in.Hub.ComplianceFocus,
		"FAQExamples":         strings.Join(faqExamples, " "),
		"WhoHeading":          headings.WhoThisIsFor,
		"ProjectsHeading":     headings.CommonProjects,
		"ProcessHeading":      headings.Process,
		"ComplianceHeading":   headings.Compliance,
		"ServiceAreasHeading": headings.ServiceAreas,
		"PricingHeading":      headings.Pricing,
		"FAQsHeading":         headings.FAQs,
		"Style":               writingStyles[seed%uint32(len(writingStyles))],
		"Approach":            openingApproaches[(seed/4)%uint32(len(openingApproaches))],
		"Angle":               contentAngles[(seed/16)%uint32(len(contentAngles))],
		"FAQStyle":            faqApproaches[(seed/64)%uint32(len(faqApproaches))],
	}
	return Prompt{
		System: Format(MustGet(HubFile, "hub-system"), data),
		User:   Format(MustGet(HubFile, "hub-sections"), data),
	}
}

// BuildCityHubPrompt composes the generation prompt for a city hub page, a
// fixed 10-block layout localized to one city.
func BuildCityHubPrompt(in HubInput) Prompt {
	data := map[string]string{
		"TradeName":       in.TradeName,
		"HubLabel":        in.HubLabel,
		"HubLabelLower":   strings.ToLower(in.HubLabel),
		"HubKey":          in.HubKey,
		"CitySlug":        in.CitySlug,
		"City":            in.City,
		"State":           in.State,
		"BusinessName":    in.BusinessName,
		"Phone":           in.Phone,
		"ServiceArea":     orDefault(in.ServiceArea, in.City),
		"CTAText":         in.CTAText,
		"ServicesList":    formatServicesList(in.Services),
		"Vocabulary":      strings.Join(firstN(in.Vocabulary, 10), ", "),
		"VocabularyShort": strings.Join(firstN(in.Vocabulary, 8), ", "),
	}
	return Prompt{
		System: Format(MustGet(HubFile, "city-hub-system"), data),
		User:   Format(MustGet(HubFile, "city-hub-blocks"), data),
	}
}

// styleSeed hashes a slug into a stable seed for style selection.
func styleSeed(slug string) uint32 {
	sum := sha256.Sum256([]byte(slug))
	return binary.BigEndian.Uint32(sum[:4])
}

func formatViolations(violations []types.Violation) string {
	lines := make([]string, 0, len(violations))
	for i, v := range violations {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, v.Detail))
	}
	return strings.Join(lines, "\n")
}

func formatLocalFacts(facts []string) string {
	if len(facts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, fact := range facts {
		b.WriteString("VERIFIED LOCAL FACT: ")
		b.WriteString(fact)
		b.WriteString("\n")
	}
	return b.String()
}

func formatSiteContext(context string) string {
	context = strings.TrimSpace(context)
	if context == "" {
		return ""
	}
	return "\nABOUT THE BUSINESS (from their website):\n" + context + "\n"
}

func formatServicesList(services []string) string {
	lines := make([]string, 0, len(services))
	for _, s := range firstN(services, 20) {
		lines = append(lines, "- "+s)
	}
	return strings.Join(lines, "\n")
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
