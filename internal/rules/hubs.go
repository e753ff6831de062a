package rules

import (
	"sort"
	"strings"

	"github.com/parkerjr2/seogen/internal/types"
)

// DefaultHub is the fallback profile key for unrecognized hub keys.
const DefaultHub = "residential"

// SectionHeadings carries the hub-specific headings for the standard hub
// page sections. Each hub uses distinct headings so hub pages do not share
// structure or text.
type SectionHeadings struct {
	WhoThisIsFor   string
	CommonProjects string
	Process        string
	Compliance     string
	ServiceAreas   string
	Pricing        string
	FAQs           string
}

// HubProfile defines the audience and messaging for one hub page type.
// Hub pages for different profiles must differ in structure, emphasis, and
// FAQ content, not just in the label.
type HubProfile struct {
	Key                 string
	AudienceLabel       string
	AudienceDescription string
	PainPoints          []string
	ProofSignals        []string
	ComplianceFocus     string
	SchedulingFocus     string
	JobExamples         []string
	Disqualifiers       []string
	CTAAngle            string
	Headings            SectionHeadings
}

var hubProfiles = map[string]HubProfile{
	"residential": {
		Key:                 "residential",
		AudienceLabel:       "Homeowners",
		AudienceDescription: "homeowners and residential property owners",
		PainPoints: []string{
			"Safety concerns with outdated systems",
			"Minimizing disruption to daily home life",
			"Understanding what's normal vs. urgent",
			"Coordinating work around family schedules",
			"Protecting home value and preventing damage",
		},
		ProofSignals: []string{
			"Licensed and insured for residential work",
			"Background-checked technicians",
			"Respectful of your home and family",
			"Clear pricing before work begins",
			"Warranty on residential installations",
		},
		ComplianceFocus: "residential safety codes and homeowner permits",
		SchedulingFocus: "flexible scheduling around your family's routine",
		JobExamples: []string{
			"Whole-home system upgrades during remodels",
			"Safety inspections before buying or selling",
			"Emergency repairs affecting daily living",
			"Preventive maintenance to avoid breakdowns",
			"Energy efficiency improvements",
		},
		Disqualifiers: []string{
			"Large commercial facilities",
			"Industrial-scale projects",
			"Multi-unit apartment complexes (see Commercial)",
		},
		CTAAngle: "Protect your home and family",
		Headings: SectionHeadings{
			WhoThisIsFor:   "Is This Service Right for Your Home?",
			CommonProjects: "Common Home Projects We Handle",
			Process:        "Our Home Service Process",
			Compliance:     "Safety Standards & Residential Codes",
			ServiceAreas:   "Primary Service Areas",
			Pricing:        "What Affects Your Project Cost",
			FAQs:           "Homeowner Questions Answered",
		},
	},
	"commercial": {
		Key:                 "commercial",
		AudienceLabel:       "Business Owners & Facility Managers",
		AudienceDescription: "business owners, facility managers, and commercial property operators",
		PainPoints: []string{
			"Minimizing business downtime and revenue loss",
			"Meeting commercial code and inspection requirements",
			"Managing liability and insurance compliance",
			"Coordinating work around business operations",
			"Budgeting for maintenance vs. emergency costs",
		},
		ProofSignals: []string{
			"Licensed for commercial work",
			"Experience with business permits and inspections",
			"After-hours and weekend availability",
			"Detailed documentation for insurance/compliance",
			"Commercial warranty coverage",
		},
		ComplianceFocus: "commercial building codes, permits, and inspection coordination",
		SchedulingFocus: "after-hours and weekend service to minimize business disruption",
		JobExamples: []string{
			"Tenant improvement projects",
			"Code compliance upgrades for inspections",
			"Preventive maintenance contracts",
			"Emergency repairs during business hours",
			"System expansions for business growth",
		},
		Disqualifiers: []string{
			"Single-family homes (see Residential)",
			"DIY projects",
			"Projects without proper permits",
		},
		CTAAngle: "Keep your business running smoothly",
		Headings: SectionHeadings{
			WhoThisIsFor:   "Commercial Services For Your Business",
			CommonProjects: "Typical Commercial Projects",
			Process:        "Minimizing Business Disruption",
			Compliance:     "Commercial Code Compliance & Permits",
			ServiceAreas:   "Commercial Service Coverage",
			Pricing:        "Commercial Project Investment",
			FAQs:           "Business Owner FAQs",
		},
	},
	"emergency": {
		Key:                 "emergency",
		AudienceLabel:       "Property Owners Facing Urgent Issues",
		AudienceDescription: "property owners dealing with urgent or time-sensitive issues",
		PainPoints: []string{
			"Immediate safety hazards requiring fast response",
			"Damage prevention and mitigation",
			"Uncertainty about severity and next steps",
			"Need for 24/7 availability",
			"Stress of unexpected repair costs",
		},
		ProofSignals: []string{
			"24/7 emergency response",
			"Rapid triage and assessment",
			"Mobile-equipped service vehicles",
			"Direct communication with on-call technicians",
			"Emergency stabilization before full repairs",
		},
		ComplianceFocus: "immediate safety protocols and emergency code compliance",
		SchedulingFocus: "same-day and after-hours emergency response",
		JobExamples: []string{
			"Safety hazards requiring immediate attention",
			"System failures causing property damage",
			"Loss of essential services",
			"Storm or weather-related damage",
			"Urgent repairs before inspections or closings",
		},
		Disqualifiers: []string{
			"Routine maintenance (see Residential or Commercial)",
			"Non-urgent upgrades or improvements",
			"Projects that can wait for regular scheduling",
		},
		CTAAngle: "Get immediate help now",
		Headings: SectionHeadings{
			WhoThisIsFor:   "Emergency vs. Routine Service",
			CommonProjects: "Common Emergency Situations",
			Process:        "Our Emergency Response Process",
			Compliance:     "When You Need Emergency Service",
			ServiceAreas:   "Emergency Service Coverage",
			Pricing:        "Emergency Service Costs",
			FAQs:           "Emergency Service Questions",
		},
	},
	"repair": {
		Key:                 "repair",
		AudienceLabel:       "Property Owners Needing Fixes",
		AudienceDescription: "property owners addressing existing system problems",
		PainPoints: []string{
			"Diagnosing the root cause of problems",
			"Avoiding unnecessary replacements",
			"Getting accurate repair vs. replace guidance",
			"Understanding warranty coverage",
			"Preventing recurring issues",
		},
		ProofSignals: []string{
			"Thorough diagnostic process",
			"Honest repair vs. replace recommendations",
			"Warranty on repair work",
			"Detailed explanation of issues",
			"Follow-up to ensure lasting fixes",
		},
		ComplianceFocus: "repair standards and code-compliant fixes",
		SchedulingFocus: "prompt diagnosis and efficient repair scheduling",
		JobExamples: []string{
			"Troubleshooting intermittent problems",
			"Repairing failed components",
			"Fixing code violations found in inspections",
			"Restoring functionality after damage",
			"Addressing wear and tear issues",
		},
		Disqualifiers: []string{
			"New construction or additions (see Installation)",
			"Emergencies requiring immediate response (see Emergency)",
			"Complete system replacements (see Installation)",
		},
		CTAAngle: "Get it fixed right the first time",
		Headings: SectionHeadings{
			WhoThisIsFor:   "When Repair Service Makes Sense",
			CommonProjects: "Common Repair Issues We Fix",
			Process:        "Our Repair Diagnostic Process",
			Compliance:     "Repair or Replace? We'll Tell You Honestly",
			ServiceAreas:   "Repair Service Areas",
			Pricing:        "How Repair Costs Are Determined",
			FAQs:           "Repair Service FAQs",
		},
	},
	"installation": {
		Key:                 "installation",
		AudienceLabel:       "Property Owners Planning New Systems",
		AudienceDescription: "property owners planning new installations or major upgrades",
		PainPoints: []string{
			"Choosing the right system for needs and budget",
			"Understanding long-term costs and benefits",
			"Coordinating with other contractors",
			"Ensuring proper sizing and specifications",
			"Meeting code requirements for new work",
		},
		ProofSignals: []string{
			"Detailed planning and specification process",
			"Multiple options at different price points",
			"Coordination with other trades",
			"Permit handling and inspection scheduling",
			"Manufacturer warranties on new equipment",
		},
		ComplianceFocus: "new installation codes, permits, and inspection requirements",
		SchedulingFocus: "project planning and milestone-based scheduling",
		JobExamples: []string{
			"New construction installations",
			"Complete system replacements",
			"Home additions and expansions",
			"Upgrade projects for efficiency or capacity",
			"New feature installations",
		},
		Disqualifiers: []string{
			"Emergency repairs (see Emergency or Repair)",
			"Minor fixes or adjustments (see Repair)",
			"Routine maintenance (see Maintenance)",
		},
		CTAAngle: "Plan your project with confidence",
		Headings: SectionHeadings{
			WhoThisIsFor:   "Installation Services For Your Project",
			CommonProjects: "Installation Projects We Complete",
			Process:        "Installation Planning & Consultation",
			Compliance:     "Permits, Inspections & Trade Coordination",
			ServiceAreas:   "Installation Service Coverage",
			Pricing:        "Installation Project Investment",
			FAQs:           "Installation Project FAQs",
		},
	},
	"maintenance": {
		Key:                 "maintenance",
		AudienceLabel:       "Property Owners Protecting Their Investment",
		AudienceDescription: "property owners focused on preventive care and system longevity",
		PainPoints: []string{
			"Avoiding unexpected breakdowns and costs",
			"Maximizing system lifespan and efficiency",
			"Remembering to schedule regular service",
			"Understanding what maintenance is actually needed",
			"Budgeting for ongoing care",
		},
		ProofSignals: []string{
			"Comprehensive maintenance programs",
			"Scheduled service reminders",
			"Detailed inspection reports",
			"Priority service for maintenance customers",
			"Maintenance records for warranty and resale",
		},
		ComplianceFocus: "preventive care standards and manufacturer requirements",
		SchedulingFocus: "regular service intervals and seasonal maintenance",
		JobExamples: []string{
			"Annual or seasonal inspections",
			"Preventive cleaning and adjustments",
			"Early problem detection and correction",
			"System optimization for efficiency",
			"Maintenance contract services",
		},
		Disqualifiers: []string{
			"Emergency repairs (see Emergency)",
			"Major installations or replacements (see Installation)",
			"One-time fixes without ongoing care (see Repair)",
		},
		CTAAngle: "Protect your investment with regular care",
		Headings: SectionHeadings{
			WhoThisIsFor:   "Who Benefits from Maintenance Programs",
			CommonProjects: "Maintenance Services We Provide",
			Process:        "Our Maintenance Service Options",
			Compliance:     "The Value of Regular Maintenance",
			ServiceAreas:   "Maintenance Service Areas",
			Pricing:        "Maintenance Program Costs",
			FAQs:           "Maintenance Program FAQs",
		},
	},
}

// HubProfileFor returns the profile for a hub key, falling back to the
// residential profile when the key is unknown.
func HubProfileFor(hubKey string) HubProfile {
	if p, ok := hubProfiles[strings.ToLower(strings.TrimSpace(hubKey))]; ok {
		return p
	}
	return hubProfiles[DefaultHub]
}

// HubKeys returns all defined hub keys in sorted order.
func HubKeys() []string {
	keys := make([]string, 0, len(hubProfiles))
	for k := range hubProfiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HubFAQs returns up to n FAQs for a hub type. No question is shared across
// hub types, so two hub pages never carry the same FAQ text.
func HubFAQs(hubKey string, n int) []types.FAQ {
	bank, ok := hubFAQBanks[strings.ToLower(strings.TrimSpace(hubKey))]
	if !ok {
		bank = hubFAQBanks[DefaultHub]
	}
	if n > len(bank) {
		n = len(bank)
	}
	out := make([]types.FAQ, n)
	copy(out, bank[:n])
	return out
}
